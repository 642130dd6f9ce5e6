package gormstore

import (
	"context"
	"errors"

	appDomain "sba-portal/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create needs a DB opened with TranslateError so a second application for
// the same owner surfaces as ErrOwnerExists.
func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appDomain.ErrOwnerExists
	}
	return err
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return applicationOrNotFound(&out, res.Error)
}

func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	return applicationOrNotFound(&out, res.Error)
}

// GetByOwnerID returns the borrower's application; owner_id is unique.
func (r *ApplicationRepository) GetByOwnerID(ctx context.Context, ownerID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&out)
	return applicationOrNotFound(&out, res.Error)
}

func (r *ApplicationRepository) ListSubmitted(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).
		Where("submitted_at IS NOT NULL").
		Order("submitted_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func applicationOrNotFound(a *appDomain.Application, err error) (*appDomain.Application, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, h *appDomain.StatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HistoryRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]appDomain.StatusHistory, error) {
	var out []appDomain.StatusHistory
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
