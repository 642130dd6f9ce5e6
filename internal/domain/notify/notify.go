// Package notify is the optional push channel for record changes. Publishing
// is best effort: no operation depends on a subscriber receiving an event.
package notify

import (
	"context"
	"time"
)

const (
	ApplicationStatusChanged = "application.status_changed"
	MeetingCreated           = "meeting.created"
	MeetingStatusChanged     = "meeting.status_changed"
)

type Event struct {
	Type    string            `json:"type"`
	Subject string            `json:"subject"`
	OwnerID string            `json:"owner_id"`
	Data    map[string]string `json:"data,omitempty"`
	At      time.Time         `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
