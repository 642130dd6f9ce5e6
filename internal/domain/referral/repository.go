package referral

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	GetByLeadID(ctx context.Context, leadID string) (*Lead, error)
	// Newest first.
	ListByReferrer(ctx context.Context, referralUserID string) ([]Lead, error)
	ListAll(ctx context.Context) ([]Lead, error)
	Save(ctx context.Context, l *Lead) error
}
