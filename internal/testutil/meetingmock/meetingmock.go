package meetingmock

import (
	"context"

	domain "sba-portal/internal/domain/meeting"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, m *domain.Meeting) error
	GetByMeetingIDFn func(ctx context.Context, meetingID string) (*domain.Meeting, error)
	ListByUserFn     func(ctx context.Context, userID string) ([]domain.Meeting, error)
	ListAllFn        func(ctx context.Context) ([]domain.Meeting, error)
	SaveFn           func(ctx context.Context, m *domain.Meeting) error
}

func (r *Repo) Create(ctx context.Context, m *domain.Meeting) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, m)
	}
	return nil
}

func (r *Repo) GetByMeetingID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	if r.GetByMeetingIDFn != nil {
		return r.GetByMeetingIDFn(ctx, meetingID)
	}
	return nil, context.Canceled
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Meeting, error) {
	if r.ListByUserFn != nil {
		return r.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Meeting, error) {
	if r.ListAllFn != nil {
		return r.ListAllFn(ctx)
	}
	return nil, nil
}

func (r *Repo) Save(ctx context.Context, m *domain.Meeting) error {
	if r.SaveFn != nil {
		return r.SaveFn(ctx, m)
	}
	return nil
}
