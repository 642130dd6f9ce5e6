package meeting

import (
	"fmt"
	"time"

	"sba-portal/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("meeting %w", apperr.ErrNotFound)
)

type Type string

const (
	TypeCallback Type = "callback"
	TypeInPerson Type = "in-person"
)

func (t Type) Valid() bool { return t == TypeCallback || t == TypeInPerson }

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Table: meetings
type Meeting struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MeetingID   string    `gorm:"column:meeting_id;size:32;not null;uniqueIndex:ux_meetings_meeting_id" json:"meeting_id"`
	UserID      string    `gorm:"column:user_id;size:64;not null;index:idx_meetings_user" json:"user_id"`
	MeetingDate string    `gorm:"column:meeting_date;size:10;not null" json:"meeting_date"`
	MeetingTime string    `gorm:"column:meeting_time;size:5;not null" json:"meeting_time"`
	Type        Type      `gorm:"column:meeting_type;size:16;not null" json:"meeting_type"`
	Purpose     string    `gorm:"column:purpose;type:text" json:"purpose"`
	Notes       string    `gorm:"column:notes;type:text" json:"notes"`
	ContactInfo string    `gorm:"column:contact_info;size:255" json:"contact_info"`
	Status      Status    `gorm:"column:status;size:16;not null;default:'scheduled'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string { return "meetings" }

// SetStatus closes a scheduled meeting. Setting the status it already has is a
// no-op; closed meetings stay closed.
func (m *Meeting) SetStatus(target Status, now time.Time) (changed bool, err error) {
	if target != StatusCompleted && target != StatusCancelled && target != StatusScheduled {
		return false, fmt.Errorf("%w: unknown meeting status %q", apperr.ErrInvalidInput, target)
	}
	if m.Status == target {
		return false, nil
	}
	if m.Status != StatusScheduled || target == StatusScheduled {
		return false, fmt.Errorf("%w: meeting is %s", apperr.ErrInvalidTransition, m.Status)
	}
	m.Status = target
	m.UpdatedAt = now
	return true, nil
}
