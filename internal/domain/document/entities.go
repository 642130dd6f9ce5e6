package document

import (
	"fmt"
	"time"

	"sba-portal/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("document %w", apperr.ErrNotFound)
)

type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Table: documents
type Document struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DocumentID  string     `gorm:"column:document_id;size:32;not null;uniqueIndex:ux_documents_document_id" json:"document_id"`
	OwnerID     string     `gorm:"column:owner_id;size:64;not null;index:idx_documents_owner" json:"owner_id"`
	Category    string     `gorm:"column:doc_name;size:128;not null" json:"doc_name"`
	FileName    string     `gorm:"column:file_name;size:255;not null" json:"file_name"`
	FilePath    string     `gorm:"column:file_path;type:text;not null" json:"-"`
	ContentType string     `gorm:"column:content_type;size:128" json:"content_type"`
	SizeBytes   int64      `gorm:"column:size_bytes" json:"size_bytes"`
	Status      Status     `gorm:"column:status;size:16;not null;default:'uploaded'" json:"status"`
	ReviewedBy  string     `gorm:"column:reviewed_by;size:64" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	UploadedAt  time.Time  `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// Decide applies an admin review verdict. Repeating the verdict a document
// already carries is a no-op (changed=false); flipping one verdict to the
// other is rejected.
func (d *Document) Decide(target Status, reviewer string, now time.Time) (changed bool, err error) {
	if target != StatusApproved && target != StatusRejected {
		return false, fmt.Errorf("%w: %q is not a review outcome", apperr.ErrInvalidTransition, target)
	}
	switch d.Status {
	case target:
		return false, nil
	case StatusUploaded:
		d.Status = target
		d.ReviewedBy = reviewer
		t := now
		d.ReviewedAt = &t
		d.UpdatedAt = now
		return true, nil
	default:
		return false, fmt.Errorf("%w: document already %s", apperr.ErrInvalidTransition, d.Status)
	}
}
