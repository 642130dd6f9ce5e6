package uow

import (
	"context"

	"sba-portal/internal/domain/application"
	"sba-portal/internal/domain/document"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Applications application.Repository
	History      application.HistoryRepository
	Documents    document.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// Locks the application row first and hands it to fn.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
