package healthkit

import (
	"context"
	"errors"

	"github.com/goliatone/go-healthkit/pkg/activity"
	"github.com/goliatone/go-healthkit/platform"
)

// BackgroundStore is the platform surface background delivery needs.
type BackgroundStore interface {
	platform.Catalog
	platform.BackgroundDelivery
}

// BackgroundDelivery asks the platform to wake the application when new
// samples of a biometric arrive.
type BackgroundDelivery struct {
	store    BackgroundStore
	cfg      config
	resolver resolver
	emitter  *activity.Emitter
}

// NewBackgroundDelivery constructs a BackgroundDelivery over store.
func NewBackgroundDelivery(store BackgroundStore, opts ...Option) *BackgroundDelivery {
	cfg := applyOptions(opts)
	return &BackgroundDelivery{
		store:    store,
		cfg:      cfg,
		resolver: resolver{catalog: store, cache: cfg.cache},
		emitter:  cfg.emitter(),
	}
}

// Enable registers b for background delivery at most once per frequency.
func (bd *BackgroundDelivery) Enable(ctx context.Context, b Biometric, frequency platform.UpdateFrequency) (err error) {
	started := bd.cfg.now()
	event := OperationEvent{Operation: OpEnableBackgroundDelivery, Message: frequency.String()}
	defer func() {
		event.Duration = bd.cfg.now().Sub(started)
		event.Err = err
		bd.cfg.logger.LogOperation(event)
	}()
	if b == nil {
		return &UndefinedTypeError{}
	}
	event.Identifiers = []string{b.Identifier()}

	d, err := bd.resolver.resolve(b)
	if err != nil {
		return err
	}
	if err := bd.complete(ctx, func(done platform.Completion) {
		bd.store.EnableBackgroundDelivery(d.Type(), frequency, done)
	}); err != nil {
		return err
	}
	bd.emit(ctx, activity.BuildBackgroundDeliveryEnabledEvent(activity.BackgroundDeliveryEventInput{
		Identifier: d.Identifier(),
		Frequency:  frequency.String(),
	}))
	return nil
}

// Disable stops background delivery for b.
func (bd *BackgroundDelivery) Disable(ctx context.Context, b Biometric) (err error) {
	started := bd.cfg.now()
	event := OperationEvent{Operation: OpDisableBackgroundDelivery}
	defer func() {
		event.Duration = bd.cfg.now().Sub(started)
		event.Err = err
		bd.cfg.logger.LogOperation(event)
	}()
	if b == nil {
		return &UndefinedTypeError{}
	}
	event.Identifiers = []string{b.Identifier()}

	d, err := bd.resolver.resolve(b)
	if err != nil {
		return err
	}
	if err := bd.complete(ctx, func(done platform.Completion) {
		bd.store.DisableBackgroundDelivery(d.Type(), done)
	}); err != nil {
		return err
	}
	bd.emit(ctx, activity.BuildBackgroundDeliveryDisabledEvent(activity.BackgroundDeliveryEventInput{
		Identifier: d.Identifier(),
	}))
	return nil
}

func (bd *BackgroundDelivery) complete(ctx context.Context, call func(platform.Completion)) error {
	success, err := await(ctx, func(resume func(bool, error)) error {
		call(func(success bool, err error) {
			resume(success, err)
		})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return errors.Join(ErrBackgroundDeliveryRejected, err)
	}
	if !success {
		return ErrBackgroundDeliveryRejected
	}
	return nil
}

func (bd *BackgroundDelivery) emit(ctx context.Context, event activity.Event) {
	emit(ctx, bd.emitter, bd.cfg.logger, event)
}
