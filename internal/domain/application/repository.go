package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// Lock the row for the rest of the surrounding transaction.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*Application, error)
	// Applications with submitted_at set, newest submission first.
	ListSubmitted(ctx context.Context) ([]Application, error)
	Save(ctx context.Context, a *Application) error
}

type HistoryRepository interface {
	Append(ctx context.Context, h *StatusHistory) error
	// Oldest first.
	ListByApplication(ctx context.Context, applicationID uint64) ([]StatusHistory, error)
}
