package healthkit

import (
	"context"
	"errors"

	"github.com/goliatone/go-healthkit/pkg/activity"
	"github.com/goliatone/go-healthkit/platform"
)

// RequestStatus says whether asking for access would show the user a prompt.
type RequestStatus int

const (
	WouldPrompt RequestStatus = iota + 1
	WouldNotPrompt
)

func (s RequestStatus) String() string {
	switch s {
	case WouldPrompt:
		return "would_prompt"
	case WouldNotPrompt:
		return "would_not_prompt"
	default:
		return "unknown"
	}
}

// AuthorizationStatus is the sharing status of one biometric.
type AuthorizationStatus int

const (
	NotDetermined AuthorizationStatus = iota
	Denied
	Authorized
)

func (s AuthorizationStatus) String() string {
	switch s {
	case NotDetermined:
		return "not_determined"
	case Denied:
		return "denied"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// BiometricAuthorization pairs a resolved biometric with its sharing status.
type BiometricAuthorization struct {
	Biometric Descriptor
	Status    AuthorizationStatus
}

// Access lists the biometrics to read and to share (write).
type Access struct {
	Read  []Biometric
	Share []Biometric
}

// AuthorizationStore is the platform surface the authorizer needs.
type AuthorizationStore interface {
	platform.Catalog
	platform.Authorization
}

// Authorizer checks and requests platform permissions. It keeps no state;
// every call asks the platform.
type Authorizer struct {
	store    AuthorizationStore
	cfg      config
	resolver resolver
	emitter  *activity.Emitter
}

// NewAuthorizer constructs an Authorizer over store.
func NewAuthorizer(store AuthorizationStore, opts ...Option) *Authorizer {
	cfg := applyOptions(opts)
	return &Authorizer{
		store:    store,
		cfg:      cfg,
		resolver: resolver{catalog: store, cache: cfg.cache},
		emitter:  cfg.emitter(),
	}
}

// Check reports whether requesting read access to biometrics would prompt.
func (a *Authorizer) Check(ctx context.Context, biometrics ...Biometric) (RequestStatus, error) {
	return a.CheckAccess(ctx, Access{Read: biometrics})
}

// CheckAccess reports whether requesting access would prompt the user. When
// health data is unavailable it reports WouldNotPrompt without asking the
// platform.
func (a *Authorizer) CheckAccess(ctx context.Context, access Access) (status RequestStatus, err error) {
	started := a.cfg.now()
	event := OperationEvent{Operation: OpCheckAuthorization, Identifiers: accessIdentifiers(access)}
	defer func() {
		event.Duration = a.cfg.now().Sub(started)
		event.Err = err
		a.cfg.logger.LogOperation(event)
	}()

	if !a.store.IsHealthDataAvailable() {
		event.Message, event.Skipped = "health data not available", true
		return WouldNotPrompt, nil
	}
	share, read, err := a.typeSets(access)
	if err != nil {
		return 0, err
	}
	if share.Len() == 0 && read.Len() == 0 {
		event.Message, event.Skipped = "no types requested", true
		return WouldNotPrompt, nil
	}

	platformStatus, err := await(ctx, func(resume func(platform.RequestStatus, error)) error {
		a.store.AuthorizationRequestStatus(share, read, func(s platform.RequestStatus, err error) {
			resume(s, err)
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	switch platformStatus {
	case platform.RequestStatusShouldRequest, platform.RequestStatusUnknown:
		return WouldPrompt, nil
	case platform.RequestStatusUnnecessary:
		return WouldNotPrompt, nil
	default:
		return 0, &UnsupportedStatusError{Kind: "authorization request", Value: int(platformStatus)}
	}
}

// Request asks the user for read access to biometrics.
func (a *Authorizer) Request(ctx context.Context, biometrics ...Biometric) error {
	return a.RequestAccess(ctx, Access{Read: biometrics})
}

// RequestAccess runs the platform prompt flow. A nil error only means the flow
// completed; which types were granted is never revealed. When health data is
// unavailable this is a no-op.
func (a *Authorizer) RequestAccess(ctx context.Context, access Access) (err error) {
	started := a.cfg.now()
	event := OperationEvent{Operation: OpRequestAuthorization, Identifiers: accessIdentifiers(access)}
	defer func() {
		event.Duration = a.cfg.now().Sub(started)
		event.Err = err
		a.cfg.logger.LogOperation(event)
	}()

	if !a.store.IsHealthDataAvailable() {
		event.Message, event.Skipped = "health data not available", true
		return nil
	}
	share, read, err := a.typeSets(access)
	if err != nil {
		return err
	}
	if share.Len() == 0 && read.Len() == 0 {
		event.Message, event.Skipped = "no types requested", true
		return nil
	}

	success, err := await(ctx, func(resume func(bool, error)) error {
		a.store.RequestAuthorization(share, read, func(success bool, err error) {
			resume(success, err)
		})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return &RequestFailedError{Err: err}
	}
	if !success {
		return ErrRequestDenied
	}

	a.emit(ctx, activity.BuildAuthorizationRequestedEvent(activity.AuthorizationEventInput{
		Read:  typeIdentifiers(read),
		Share: typeIdentifiers(share),
	}))
	return nil
}

// Status reports the sharing status of each biometric, in input order with
// duplicates collapsed.
func (a *Authorizer) Status(ctx context.Context, biometrics ...Biometric) (out []BiometricAuthorization, err error) {
	started := a.cfg.now()
	event := OperationEvent{Operation: OpAuthorizationStatus, Identifiers: biometricIdentifiers(biometrics)}
	defer func() {
		event.Duration = a.cfg.now().Sub(started)
		event.Err = err
		a.cfg.logger.LogOperation(event)
	}()

	available := a.store.IsHealthDataAvailable()
	if !available {
		event.Message, event.Skipped = "health data not available", true
	}
	seen := platform.NewTypeSet()
	for _, b := range biometrics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		d, err := a.resolver.resolve(b)
		if err != nil {
			return nil, err
		}
		if seen.Contains(d.Type()) {
			continue
		}
		seen.Add(d.Type())
		status := NotDetermined
		if available {
			status, err = mapAuthorizationStatus(a.store.AuthorizationStatus(d.Type()))
			if err != nil {
				return nil, err
			}
		}
		out = append(out, BiometricAuthorization{Biometric: d, Status: status})
	}
	return out, nil
}

func mapAuthorizationStatus(status platform.AuthorizationStatus) (AuthorizationStatus, error) {
	switch status {
	case platform.AuthorizationNotDetermined:
		return NotDetermined, nil
	case platform.AuthorizationSharingDenied:
		return Denied, nil
	case platform.AuthorizationSharingAuthorized:
		return Authorized, nil
	default:
		return 0, &UnsupportedStatusError{Kind: "authorization", Value: int(status)}
	}
}

func (a *Authorizer) typeSets(access Access) (share, read platform.TypeSet, err error) {
	share, err = a.resolver.typeSet(access.Share)
	if err != nil {
		return share, read, err
	}
	read, err = a.resolver.typeSet(access.Read)
	return share, read, err
}

func (a *Authorizer) emit(ctx context.Context, event activity.Event) {
	emit(ctx, a.emitter, a.cfg.logger, event)
}

func emit(ctx context.Context, emitter *activity.Emitter, logger OperationLogger, event activity.Event) {
	if !emitter.Enabled() {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil {
		logger.LogOperation(OperationEvent{
			Operation:   OpEmitActivity,
			Identifiers: event.Identifiers,
			Message:     event.Verb,
			Err:         err,
		})
	}
}

func accessIdentifiers(access Access) []string {
	return append(biometricIdentifiers(access.Read), biometricIdentifiers(access.Share)...)
}

func biometricIdentifiers(biometrics []Biometric) []string {
	out := make([]string, 0, len(biometrics))
	for _, b := range biometrics {
		if b != nil {
			out = append(out, b.Identifier())
		}
	}
	return out
}

func typeIdentifiers(set platform.TypeSet) []string {
	types := set.Types()
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.Identifier())
	}
	return out
}
