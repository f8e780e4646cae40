// Package healthkit is a typed access layer over a platform health-data
// store. It resolves biometric identifiers into platform types, fetches
// samples converted into units of the biometric's family, and drives the
// platform authorization workflow.
package healthkit

import (
	"time"

	"github.com/goliatone/go-healthkit/pkg/activity"
)

// Option configures executors, authorizers and background delivery.
type Option func(*config)

type config struct {
	logger          OperationLogger
	cache           DescriptorCache
	activityHooks   activity.Hooks
	activityChannel string
	actorID         string
	now             func() time.Time
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopOperationLogger{}
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return cfg
}

func (cfg config) emitter() *activity.Emitter {
	return activity.NewEmitter(cfg.activityHooks, activity.Config{
		Enabled: len(cfg.activityHooks) > 0,
		Channel: cfg.activityChannel,
		ActorID: cfg.actorID,
		Now:     cfg.now,
	})
}

// WithOperationLogger attaches an operation logger.
func WithOperationLogger(logger OperationLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopOperationLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithDescriptorCache caches capability resolutions. Without a cache every
// call resolves against the platform catalog.
func WithDescriptorCache(cache DescriptorCache) Option {
	return func(cfg *config) {
		cfg.cache = cache
	}
}

// WithActivityHooks emits activity events for authorization requests and
// background delivery changes. Nil hooks are dropped.
func WithActivityHooks(hooks ...activity.ActivityHook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.activityHooks = append(cfg.activityHooks, hook)
			}
		}
	}
}

// WithActivityChannel overrides the channel stamped on activity events.
func WithActivityChannel(channel string) Option {
	return func(cfg *config) {
		cfg.activityChannel = channel
	}
}

// WithActorID sets the actor recorded on activity events.
func WithActorID(actorID string) Option {
	return func(cfg *config) {
		cfg.actorID = actorID
	}
}

// WithClock overrides the time source used for durations and events.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		cfg.now = now
	}
}
