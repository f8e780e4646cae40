// Package activity describes the audit events healthkit raises when an
// authorization prompt completes or background delivery changes, and fans
// them out to hooks.
package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event is one health activity occurrence. Identifiers lists the platform
// type identifiers the event covers; ObjectID is derived from them when
// empty.
type Event struct {
	Verb        string
	ActorID     string
	ObjectType  string
	ObjectID    string
	Channel     string
	Identifiers []string
	Metadata    map[string]any
	OccurredAt  time.Time
}

func (e Event) routable() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// ActivityHook receives normalized activity events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc allows plain functions to satisfy ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify dispatches to the underlying function.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more hooks.
type Hooks []ActivityHook

// Notify normalizes the event and forwards it to every hook. Events without
// a verb, object type or object ID are dropped. Hook errors are joined.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := NormalizeEvent(event)
	if !normalized.routable() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims strings, sorts and de-duplicates identifiers, derives
// a missing object ID from them, clones metadata and stamps a missing time.
func NormalizeEvent(event Event) Event {
	normalized := event
	normalized.Verb = strings.TrimSpace(event.Verb)
	normalized.ActorID = strings.TrimSpace(event.ActorID)
	normalized.ObjectType = strings.TrimSpace(event.ObjectType)
	normalized.ObjectID = strings.TrimSpace(event.ObjectID)
	normalized.Channel = strings.TrimSpace(event.Channel)
	normalized.Identifiers = sortedUnique(event.Identifiers)
	if normalized.ObjectID == "" {
		normalized.ObjectID = strings.Join(normalized.Identifiers, ",")
	}
	normalized.Metadata = cloneMap(event.Metadata)
	if normalized.OccurredAt.IsZero() {
		normalized.OccurredAt = time.Now()
	}
	return normalized
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
