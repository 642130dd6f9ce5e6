package referral

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sba-portal/internal/domain/apperr"
)

var (
	ErrNotFound = fmt.Errorf("referral lead %w", apperr.ErrNotFound)
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusFunded    Status = "funded"
	StatusDeclined  Status = "declined"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusNew, StatusContacted, StatusInReview, StatusApproved, StatusFunded, StatusDeclined:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown referral status %q", apperr.ErrInvalidInput, raw)
}

// Table: referral_leads
type Lead struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LeadID         string          `gorm:"column:lead_id;size:32;not null;uniqueIndex:ux_referral_leads_lead_id" json:"lead_id"`
	ReferralUserID string          `gorm:"column:referral_user_id;size:64;not null;index:idx_referral_leads_referrer" json:"referral_user_id"`
	BusinessName   string          `gorm:"column:business_name;size:255;not null" json:"business_name"`
	ContactName    string          `gorm:"column:contact_name;size:255;not null" json:"contact_name"`
	ContactEmail   string          `gorm:"column:contact_email;size:255;not null" json:"contact_email"`
	ContactPhone   string          `gorm:"column:contact_phone;size:32" json:"contact_phone"`
	LoanAmount     decimal.Decimal `gorm:"column:loan_amount;type:decimal(14,2)" json:"loan_amount"`
	BusinessType   string          `gorm:"column:business_type;size:128" json:"business_type"`
	Notes          string          `gorm:"column:notes;type:text" json:"notes"`
	Status         Status          `gorm:"column:status;size:16;not null;default:'new'" json:"status"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Lead) TableName() string { return "referral_leads" }

// SetStatus moves a lead through the pipeline. Any open status may move to any
// other; funded and declined leads are closed.
func (l *Lead) SetStatus(target Status, now time.Time) (changed bool, err error) {
	if _, err := ParseStatus(string(target)); err != nil {
		return false, err
	}
	if l.Status == target {
		return false, nil
	}
	if l.Status == StatusFunded || l.Status == StatusDeclined {
		return false, fmt.Errorf("%w: lead is %s", apperr.ErrInvalidTransition, l.Status)
	}
	l.Status = target
	l.UpdatedAt = now
	return true, nil
}
