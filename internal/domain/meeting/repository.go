package meeting

import "context"

type Repository interface {
	Create(ctx context.Context, m *Meeting) error
	GetByMeetingID(ctx context.Context, meetingID string) (*Meeting, error)
	// Soonest first.
	ListByUser(ctx context.Context, userID string) ([]Meeting, error)
	ListAll(ctx context.Context) ([]Meeting, error)
	Save(ctx context.Context, m *Meeting) error
}
