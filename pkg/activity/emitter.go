package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel is stamped on events when neither the event nor the
// emitter names one.
const DefaultChannel = "healthkit"

// Config sets the defaults an Emitter applies to outgoing events.
type Config struct {
	Enabled bool
	Channel string
	// ActorID is the user whose health data the events describe.
	ActorID string
	Now     func() time.Time
}

// Emitter stamps defaults on events and fans them out to hooks.
type Emitter struct {
	hooks   Hooks
	channel string
	actorID string
	now     func() time.Time
}

// NewEmitter constructs an emitter. It is disabled unless cfg.Enabled is set
// and at least one non-nil hook is given.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	e := &Emitter{
		channel: strings.TrimSpace(cfg.Channel),
		actorID: strings.TrimSpace(cfg.ActorID),
		now:     cfg.Now,
	}
	if e.channel == "" {
		e.channel = DefaultChannel
	}
	if e.now == nil {
		e.now = time.Now
	}
	if cfg.Enabled {
		for _, hook := range hooks {
			if hook != nil {
				e.hooks = append(e.hooks, hook)
			}
		}
	}
	return e
}

// Enabled reports whether Emit reaches any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit fills a missing channel, actor and timestamp, then notifies hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	if strings.TrimSpace(event.ActorID) == "" {
		event.ActorID = e.actorID
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now()
	}
	return e.hooks.Notify(ctx, event)
}
