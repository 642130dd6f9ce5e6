package gormstore

import (
	"context"
	"errors"

	meetingDomain "sba-portal/internal/domain/meeting"

	"gorm.io/gorm"
)

type MeetingRepository struct{ db *gorm.DB }

func NewMeetingRepository(db *gorm.DB) *MeetingRepository { return &MeetingRepository{db: db} }

func (r *MeetingRepository) Create(ctx context.Context, m *meetingDomain.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MeetingRepository) Save(ctx context.Context, m *meetingDomain.Meeting) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MeetingRepository) GetByMeetingID(ctx context.Context, meetingID string) (*meetingDomain.Meeting, error) {
	var out meetingDomain.Meeting
	err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, meetingDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MeetingRepository) ListByUser(ctx context.Context, userID string) ([]meetingDomain.Meeting, error) {
	var out []meetingDomain.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meeting_date ASC, meeting_time ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *MeetingRepository) ListAll(ctx context.Context) ([]meetingDomain.Meeting, error) {
	var out []meetingDomain.Meeting
	err := r.db.WithContext(ctx).
		Order("meeting_date ASC, meeting_time ASC, id ASC").
		Find(&out).Error
	return out, err
}
