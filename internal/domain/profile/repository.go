package profile

import (
	"context"

	"sba-portal/internal/domain/auth"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// Upsert inserts the profile or overwrites the editable columns of the
	// row already keyed by its user id.
	Upsert(ctx context.Context, p *Profile) error
	// Newest first.
	ListByRole(ctx context.Context, role auth.Role) ([]Profile, error)
}
