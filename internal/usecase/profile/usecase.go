package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/auth"
	domain "sba-portal/internal/domain/profile"
)

type UpdateInput struct {
	FirstName string
	LastName  string
	Phone     string
	Company   string
}

type Usecase struct {
	profiles domain.Repository
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewUsecase(profiles domain.Repository, log logrus.FieldLogger) *Usecase {
	return &Usecase{profiles: profiles, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the caller's profile. A caller who never saved one gets a blank
// profile carrying their identity.
func (u *Usecase) Get(ctx context.Context, actor auth.Actor) (*domain.Profile, error) {
	if err := actor.Require(auth.RoleBorrower, auth.RoleReferral); err != nil {
		return nil, err
	}
	p, err := u.profiles.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return blank(actor), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update overwrites the caller's editable profile fields, creating the row on
// first save. Email and role always follow the caller's identity.
func (u *Usecase) Update(ctx context.Context, actor auth.Actor, in UpdateInput) (*domain.Profile, error) {
	if err := actor.Require(auth.RoleBorrower, auth.RoleReferral); err != nil {
		return nil, err
	}
	p, err := u.profiles.GetByUserID(ctx, actor.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p = blank(actor)
	case err != nil:
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := u.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.Email = actor.Email
	p.Role = actor.Role
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.Phone = strings.TrimSpace(in.Phone)
	p.Company = strings.TrimSpace(in.Company)
	p.UpdatedAt = now
	if err := u.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	u.log.WithField("user_id", actor.UserID).Info("profile updated")
	return p, nil
}

// ListBorrowers returns every borrower profile, newest first.
func (u *Usecase) ListBorrowers(ctx context.Context, actor auth.Actor) ([]domain.Profile, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := u.profiles.ListByRole(ctx, auth.RoleBorrower)
	if err != nil {
		return nil, fmt.Errorf("list borrowers: %w", err)
	}
	return out, nil
}

func blank(actor auth.Actor) *domain.Profile {
	return &domain.Profile{UserID: actor.UserID, Email: actor.Email, Role: actor.Role}
}
