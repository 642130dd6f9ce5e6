package referralmock

import (
	"context"

	domain "sba-portal/internal/domain/referral"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, l *domain.Lead) error
	GetByLeadIDFn    func(ctx context.Context, leadID string) (*domain.Lead, error)
	ListByReferrerFn func(ctx context.Context, referralUserID string) ([]domain.Lead, error)
	ListAllFn        func(ctx context.Context) ([]domain.Lead, error)
	SaveFn           func(ctx context.Context, l *domain.Lead) error
}

func (r *Repo) Create(ctx context.Context, l *domain.Lead) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, l)
	}
	return nil
}

func (r *Repo) GetByLeadID(ctx context.Context, leadID string) (*domain.Lead, error) {
	if r.GetByLeadIDFn != nil {
		return r.GetByLeadIDFn(ctx, leadID)
	}
	return nil, context.Canceled
}

func (r *Repo) ListByReferrer(ctx context.Context, referralUserID string) ([]domain.Lead, error) {
	if r.ListByReferrerFn != nil {
		return r.ListByReferrerFn(ctx, referralUserID)
	}
	return nil, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Lead, error) {
	if r.ListAllFn != nil {
		return r.ListAllFn(ctx)
	}
	return nil, nil
}

func (r *Repo) Save(ctx context.Context, l *domain.Lead) error {
	if r.SaveFn != nil {
		return r.SaveFn(ctx, l)
	}
	return nil
}
