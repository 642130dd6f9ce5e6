package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
	domain "sba-portal/internal/domain/meeting"
	"sba-portal/internal/domain/notify"
	"sba-portal/pkg/id"
)

type ScheduleInput struct {
	Date        string // 2006-01-02
	Time        string // 15:04
	Type        string
	Purpose     string
	Notes       string
	ContactInfo string
}

type Usecase struct {
	meetings domain.Repository
	events   notify.Publisher
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewUsecase(meetings domain.Repository, events notify.Publisher, log logrus.FieldLogger) *Usecase {
	if events == nil {
		events = notify.Nop{}
	}
	return &Usecase{meetings: meetings, events: events, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Schedule(ctx context.Context, actor auth.Actor, in ScheduleInput) (*domain.Meeting, error) {
	if err := actor.Require(auth.RoleBorrower, auth.RoleReferral); err != nil {
		return nil, err
	}
	if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
		return nil, fmt.Errorf("%w: meeting_date must be YYYY-MM-DD", apperr.ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, fmt.Errorf("%w: meeting_time must be HH:MM", apperr.ErrInvalidInput)
	}
	typ := domain.Type(strings.ToLower(strings.TrimSpace(in.Type)))
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: meeting_type must be callback or in-person", apperr.ErrInvalidInput)
	}

	m := &domain.Meeting{
		MeetingID:   id.NewID32(),
		UserID:      actor.UserID,
		MeetingDate: in.Date,
		MeetingTime: in.Time,
		Type:        typ,
		Purpose:     strings.TrimSpace(in.Purpose),
		Notes:       strings.TrimSpace(in.Notes),
		ContactInfo: strings.TrimSpace(in.ContactInfo),
		Status:      domain.StatusScheduled,
	}
	if err := u.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	u.publish(ctx, notify.Event{
		Type:    notify.MeetingCreated,
		Subject: m.MeetingID,
		OwnerID: m.UserID,
		Data:    map[string]string{"meeting_date": m.MeetingDate, "meeting_time": m.MeetingTime, "meeting_type": string(m.Type)},
		At:      u.now(),
	})
	return m, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor) ([]domain.Meeting, error) {
	if err := actor.Require(auth.RoleBorrower, auth.RoleReferral); err != nil {
		return nil, err
	}
	out, err := u.meetings.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return out, nil
}

func (u *Usecase) ListAll(ctx context.Context, actor auth.Actor) ([]domain.Meeting, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := u.meetings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return out, nil
}

func (u *Usecase) UpdateStatus(ctx context.Context, actor auth.Actor, meetingID, status string) (*domain.Meeting, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	m, err := u.meetings.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	from := m.Status
	changed, err := m.SetStatus(domain.Status(status), u.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return m, nil
	}
	if err := u.meetings.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save meeting: %w", err)
	}
	u.publish(ctx, notify.Event{
		Type:    notify.MeetingStatusChanged,
		Subject: m.MeetingID,
		OwnerID: m.UserID,
		Data:    map[string]string{"from": string(from), "to": string(m.Status)},
		At:      m.UpdatedAt,
	})
	return m, nil
}

func (u *Usecase) publish(ctx context.Context, e notify.Event) {
	if err := u.events.Publish(ctx, e); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{"event": e.Type, "subject": e.Subject}).Warn("publish event failed")
	}
}
