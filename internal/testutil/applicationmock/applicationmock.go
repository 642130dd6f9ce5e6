package applicationmock

import (
	"context"

	domain "sba-portal/internal/domain/application"
)

var (
	_ domain.Repository        = (*Repo)(nil)
	_ domain.HistoryRepository = (*History)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByOwnerIDFn                func(ctx context.Context, ownerID string) (*domain.Application, error)
	ListSubmittedFn               func(ctx context.Context) ([]domain.Application, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Application, error) {
	if m.GetByOwnerIDFn != nil {
		return m.GetByOwnerIDFn(ctx, ownerID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListSubmitted(ctx context.Context) ([]domain.Application, error) {
	if m.ListSubmittedFn != nil {
		return m.ListSubmittedFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

// History records appended rows unless AppendFn overrides it.
type History struct {
	AppendFn            func(ctx context.Context, h *domain.StatusHistory) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]domain.StatusHistory, error)

	Appended []domain.StatusHistory
}

func (m *History) Append(ctx context.Context, h *domain.StatusHistory) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, h)
	}
	m.Appended = append(m.Appended, *h)
	return nil
}

func (m *History) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.StatusHistory, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return m.Appended, nil
}
