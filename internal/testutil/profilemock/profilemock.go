package profilemock

import (
	"context"

	"sba-portal/internal/domain/auth"
	domain "sba-portal/internal/domain/profile"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertFn      func(ctx context.Context, p *domain.Profile) error
	ListByRoleFn  func(ctx context.Context, role auth.Role) ([]domain.Profile, error)
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if r.GetByUserIDFn != nil {
		return r.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (r *Repo) Upsert(ctx context.Context, p *domain.Profile) error {
	if r.UpsertFn != nil {
		return r.UpsertFn(ctx, p)
	}
	return nil
}

func (r *Repo) ListByRole(ctx context.Context, role auth.Role) ([]domain.Profile, error) {
	if r.ListByRoleFn != nil {
		return r.ListByRoleFn(ctx, role)
	}
	return nil, nil
}
