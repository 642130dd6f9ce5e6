package gormstore

import (
	"context"
	"errors"

	docDomain "sba-portal/internal/domain/document"

	"gorm.io/gorm"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*docDomain.Document, error) {
	var out docDomain.Document
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, docDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]docDomain.Document, error) {
	var out []docDomain.Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *DocumentRepository) ListAll(ctx context.Context, status docDomain.Status) ([]docDomain.Document, error) {
	var out []docDomain.Document
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("uploaded_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *DocumentRepository) Delete(ctx context.Context, d *docDomain.Document) error {
	res := r.db.WithContext(ctx).Where("document_id = ?", d.DocumentID).Delete(&docDomain.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return docDomain.ErrNotFound
	}
	return nil
}
