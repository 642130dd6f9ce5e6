package application

import (
	"errors"
	"fmt"
	"time"

	"sba-portal/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("application %w", apperr.ErrNotFound)
	ErrForeign  = fmt.Errorf("application access %w", apperr.ErrUnauthorized)
	// ErrOwnerExists is returned by Create when the borrower already has an application.
	ErrOwnerExists = errors.New("borrower already has an application")
)

type Status string

const (
	StatusStarted          Status = "started"
	StatusDocumentsPending Status = "documents_pending"
	StatusUnderReview      Status = "under_review"
	StatusApproved         Status = "approved"
	StatusDeclined         Status = "declined"
	StatusFunded           Status = "funded"
)

func (s Status) Terminal() bool { return s == StatusDeclined || s == StatusFunded }

// Table: applications
type Application struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID string     `gorm:"column:application_id;size:32;not null;uniqueIndex:ux_applications_application_id" json:"application_id"`
	OwnerID       string     `gorm:"column:owner_id;size:64;not null;uniqueIndex:ux_applications_owner" json:"owner_id"`
	Status        Status     `gorm:"column:status;size:32;not null;default:'started'" json:"status"`
	Stage         string     `gorm:"column:stage;size:64" json:"stage"`
	Notes         string     `gorm:"column:notes;type:text" json:"notes"`
	SubmittedAt   *time.Time `gorm:"column:submitted_at;index:idx_applications_submitted_at" json:"submitted_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// Advance moves the application to status. submitted_at is stamped the first
// time the application leaves started and is never cleared afterwards.
func (a *Application) Advance(to Status, now time.Time) {
	if a.Status == StatusStarted && to != StatusStarted && a.SubmittedAt == nil {
		t := now
		a.SubmittedAt = &t
	}
	a.Status = to
	a.UpdatedAt = now
}

// Table: application_status_history
type StatusHistory struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID uint64    `gorm:"column:application_id;not null;index:idx_status_history_application" json:"-"`
	FromStatus    Status    `gorm:"column:from_status;size:32;not null" json:"from_status"`
	ToStatus      Status    `gorm:"column:to_status;size:32;not null" json:"to_status"`
	Action        Action    `gorm:"column:action;size:32;not null" json:"action"`
	ActorID       string    `gorm:"column:actor_id;size:64;not null" json:"actor_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusHistory) TableName() string { return "application_status_history" }
