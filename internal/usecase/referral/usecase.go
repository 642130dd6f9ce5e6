package referral

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
	domain "sba-portal/internal/domain/referral"
	"sba-portal/pkg/id"
)

type SubmitInput struct {
	BusinessName string
	ContactName  string
	ContactEmail string
	ContactPhone string
	LoanAmount   decimal.Decimal
	BusinessType string
	Notes        string
}

type Usecase struct {
	leads domain.Repository
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewUsecase(leads domain.Repository, log logrus.FieldLogger) *Usecase {
	return &Usecase{leads: leads, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Submit(ctx context.Context, actor auth.Actor, in SubmitInput) (*domain.Lead, error) {
	if err := actor.Require(auth.RoleReferral); err != nil {
		return nil, err
	}
	l := &domain.Lead{
		LeadID:         id.NewID32(),
		ReferralUserID: actor.UserID,
		BusinessName:   strings.TrimSpace(in.BusinessName),
		ContactName:    strings.TrimSpace(in.ContactName),
		ContactEmail:   strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		ContactPhone:   strings.TrimSpace(in.ContactPhone),
		LoanAmount:     in.LoanAmount.Round(2),
		BusinessType:   strings.TrimSpace(in.BusinessType),
		Notes:          strings.TrimSpace(in.Notes),
		Status:         domain.StatusNew,
	}
	if l.BusinessName == "" || l.ContactName == "" {
		return nil, fmt.Errorf("%w: business_name and contact_name are required", apperr.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(l.ContactEmail); err != nil {
		return nil, fmt.Errorf("%w: contact_email is not a valid address", apperr.ErrInvalidInput)
	}
	if l.LoanAmount.IsNegative() {
		return nil, fmt.Errorf("%w: loan_amount must not be negative", apperr.ErrInvalidInput)
	}
	if err := u.leads.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create referral lead: %w", err)
	}
	u.log.WithFields(logrus.Fields{"lead_id": l.LeadID, "referral_user_id": l.ReferralUserID}).Info("referral lead submitted")
	return l, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor) ([]domain.Lead, error) {
	if err := actor.Require(auth.RoleReferral); err != nil {
		return nil, err
	}
	out, err := u.leads.ListByReferrer(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list referral leads: %w", err)
	}
	return out, nil
}

func (u *Usecase) ListAll(ctx context.Context, actor auth.Actor) ([]domain.Lead, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := u.leads.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referral leads: %w", err)
	}
	return out, nil
}

func (u *Usecase) UpdateStatus(ctx context.Context, actor auth.Actor, leadID, status string) (*domain.Lead, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	l, err := u.leads.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	changed, err := l.SetStatus(target, u.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return l, nil
	}
	if err := u.leads.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save referral lead: %w", err)
	}
	return l, nil
}
