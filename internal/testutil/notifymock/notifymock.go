package notifymock

import (
	"context"
	"sync"

	"sba-portal/internal/domain/notify"
)

var _ notify.Publisher = (*Publisher)(nil)

// Publisher records every event it is handed and returns Err.
type Publisher struct {
	Err error

	mu     sync.Mutex
	events []notify.Event
}

func (p *Publisher) Publish(_ context.Context, e notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.Err
}

func (p *Publisher) Events() []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Event(nil), p.events...)
}
