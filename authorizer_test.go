package healthkit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/pkg/activity"
	"github.com/goliatone/go-healthkit/platform"
	"github.com/goliatone/go-healthkit/platform/memstore"
)

var sleep = healthkit.Ref{ID: "HKCategoryTypeIdentifierSleepAnalysis", Cat: healthkit.CategoryCategory}

func TestCheckIsIdempotent(t *testing.T) {
	store := newStore(t)
	authorizer := healthkit.NewAuthorizer(store)

	for i := 0; i < 3; i++ {
		status, err := authorizer.Check(context.Background(), healthkit.HeartRate, sleep)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if status != healthkit.WouldPrompt {
			t.Fatalf("check %d: expected WouldPrompt, got %s", i, status)
		}
	}
	if store.Prompts() != 0 {
		t.Fatalf("check must not prompt, got %d prompts", store.Prompts())
	}
}

func TestCheckAfterRequest(t *testing.T) {
	store := newStore(t)
	authorizer := healthkit.NewAuthorizer(store)
	access := healthkit.Access{Read: []healthkit.Biometric{healthkit.HeartRate}, Share: []healthkit.Biometric{healthkit.BodyMass}}

	if err := authorizer.RequestAccess(context.Background(), access); err != nil {
		t.Fatalf("request: %v", err)
	}
	status, err := authorizer.CheckAccess(context.Background(), access)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if status != healthkit.WouldNotPrompt {
		t.Fatalf("expected WouldNotPrompt after the prompt ran, got %s", status)
	}
}

func TestCheckWithoutHealthData(t *testing.T) {
	store := newStore(t, memstore.WithAvailability(false))
	log := &recorder{}
	authorizer := healthkit.NewAuthorizer(store, healthkit.WithOperationLogger(log))
	store.SetRequestStatus(platform.RequestStatusShouldRequest)

	status, err := authorizer.Check(context.Background(), healthkit.HeartRate)
	if err != nil || status != healthkit.WouldNotPrompt {
		t.Fatalf("expected WouldNotPrompt, got %s, %v", status, err)
	}
	if event := log.last(t); event.Message != "health data not available" || !event.Skipped {
		t.Fatalf("unexpected operation event %+v", event)
	}
}

func TestEmptyAccessSkipsPlatform(t *testing.T) {
	store := newStore(t)
	store.SetRequestStatus(platform.RequestStatusShouldRequest)
	authorizer := healthkit.NewAuthorizer(store)

	status, err := authorizer.Check(context.Background())
	if err != nil || status != healthkit.WouldNotPrompt {
		t.Fatalf("expected WouldNotPrompt, got %s, %v", status, err)
	}
	if err := authorizer.Request(context.Background()); err != nil {
		t.Fatalf("request: %v", err)
	}
	if store.Prompts() != 0 {
		t.Fatalf("expected no prompt, got %d", store.Prompts())
	}
}

func TestCheckMapsPlatformStatus(t *testing.T) {
	cases := []struct {
		status platform.RequestStatus
		want   healthkit.RequestStatus
	}{
		{platform.RequestStatusUnknown, healthkit.WouldPrompt},
		{platform.RequestStatusShouldRequest, healthkit.WouldPrompt},
		{platform.RequestStatusUnnecessary, healthkit.WouldNotPrompt},
	}
	for _, tc := range cases {
		store := newStore(t)
		store.SetRequestStatus(tc.status)
		got, err := healthkit.NewAuthorizer(store).Check(context.Background(), healthkit.HeartRate)
		if err != nil {
			t.Fatalf("status %d: %v", tc.status, err)
		}
		if got != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, got)
		}
	}

	store := newStore(t)
	store.SetRequestStatus(platform.RequestStatus(42))
	_, err := healthkit.NewAuthorizer(store).Check(context.Background(), healthkit.HeartRate)
	var unsupported *healthkit.UnsupportedStatusError
	if !errors.As(err, &unsupported) || unsupported.Value != 42 {
		t.Fatalf("expected UnsupportedStatusError, got %v", err)
	}
}

func TestCheckUndefinedType(t *testing.T) {
	store := newStore(t)
	_, err := healthkit.NewAuthorizer(store).Check(context.Background(), healthkit.Ref{ID: "HKCategoryTypeIdentifierNope", Cat: healthkit.CategoryCategory})
	if !errors.Is(err, healthkit.ErrUndefinedPlatformType) {
		t.Fatalf("expected ErrUndefinedPlatformType, got %v", err)
	}
}

func TestRequestOutcomes(t *testing.T) {
	boom := errors.New("prompt crashed")
	cases := []struct {
		name    string
		success bool
		err     error
		check   func(t *testing.T, err error)
	}{
		{name: "completed", success: true, check: func(t *testing.T, err error) {
			if err != nil {
				t.Fatalf("expected nil, got %v", err)
			}
		}},
		{name: "not completed", success: false, check: func(t *testing.T, err error) {
			if !errors.Is(err, healthkit.ErrRequestDenied) {
				t.Fatalf("expected ErrRequestDenied, got %v", err)
			}
		}},
		{name: "failed", success: false, err: boom, check: func(t *testing.T, err error) {
			var failed *healthkit.RequestFailedError
			if !errors.As(err, &failed) || !errors.Is(err, boom) || !errors.Is(err, healthkit.ErrRequestFailed) {
				t.Fatalf("expected RequestFailedError wrapping the platform error, got %v", err)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			store.SetPromptResult(tc.success, tc.err)
			tc.check(t, healthkit.NewAuthorizer(store).Request(context.Background(), healthkit.HeartRate))
			if store.Prompts() != 1 {
				t.Fatalf("expected one prompt, got %d", store.Prompts())
			}
		})
	}
}

func TestRequestWithoutHealthData(t *testing.T) {
	store := newStore(t, memstore.WithAvailability(false))
	if err := healthkit.NewAuthorizer(store).Request(context.Background(), healthkit.HeartRate); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if store.Prompts() != 0 {
		t.Fatalf("expected no prompt, got %d", store.Prompts())
	}
}

func TestStatusReportsSharing(t *testing.T) {
	policy, err := memstore.NewCELPolicy(`access == "read" || identifier.endsWith("BodyMass")`)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	store := newStore(t, memstore.WithAuthorizationPolicy(policy))
	authorizer := healthkit.NewAuthorizer(store, healthkit.WithDescriptorCache(healthkit.NewDescriptorCache()))

	err = authorizer.RequestAccess(context.Background(), healthkit.Access{
		Share: []healthkit.Biometric{healthkit.BodyMass, healthkit.HeartRate},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	statuses, err := authorizer.Status(context.Background(), healthkit.BodyMass, healthkit.HeartRate, healthkit.StepCount, healthkit.BodyMass)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	want := []healthkit.AuthorizationStatus{healthkit.Authorized, healthkit.Denied, healthkit.NotDetermined}
	if len(statuses) != len(want) {
		t.Fatalf("expected %d statuses with duplicates collapsed, got %d", len(want), len(statuses))
	}
	for i, s := range statuses {
		if s.Status != want[i] {
			t.Fatalf("%s: expected %s, got %s", s.Biometric.Identifier(), want[i], s.Status)
		}
	}
	if statuses[0].Biometric.Identifier() != "HKQuantityTypeIdentifierBodyMass" {
		t.Fatalf("expected input order, got %s first", statuses[0].Biometric.Identifier())
	}
}

func TestStatusWithoutHealthData(t *testing.T) {
	store := newStore(t, memstore.WithAvailability(false))
	statuses, err := healthkit.NewAuthorizer(store).Status(context.Background(), healthkit.HeartRate, sleep)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, s := range statuses {
		if s.Status != healthkit.NotDetermined {
			t.Fatalf("expected NotDetermined, got %s", s.Status)
		}
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
}

// stuckStore never answers authorization prompts.
type stuckStore struct {
	*memstore.Store
}

func (stuckStore) RequestAuthorization(platform.TypeSet, platform.TypeSet, platform.Completion) {}

func TestRequestStopsWaitingOnCancel(t *testing.T) {
	authorizer := healthkit.NewAuthorizer(stuckStore{Store: newStore(t)})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	err := authorizer.Request(ctx, healthkit.HeartRate)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var failed *healthkit.RequestFailedError
	if errors.As(err, &failed) {
		t.Fatalf("cancellation must not be reported as a failed request")
	}
}

func TestRequestEmitsActivity(t *testing.T) {
	store := newStore(t)
	var events []activity.Event
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		events = append(events, event)
		return nil
	})
	authorizer := healthkit.NewAuthorizer(store,
		healthkit.WithActivityHooks(hook),
		healthkit.WithActivityChannel("mobile"),
		healthkit.WithActorID("user-1"),
		healthkit.WithClock(func() time.Time { return day }),
	)

	err := authorizer.RequestAccess(context.Background(), healthkit.Access{
		Read:  []healthkit.Biometric{healthkit.HeartRate, sleep},
		Share: []healthkit.Biometric{healthkit.BodyMass},
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one activity event, got %d", len(events))
	}
	event := events[0]
	if event.Verb != activity.VerbAuthorizationRequested || event.Channel != "mobile" || event.ActorID != "user-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if !event.OccurredAt.Equal(day) {
		t.Fatalf("expected clock time, got %s", event.OccurredAt)
	}
	if !strings.Contains(event.ObjectID, "HKQuantityTypeIdentifierHeartRate") {
		t.Fatalf("expected object id to list identifiers, got %q", event.ObjectID)
	}
	if len(event.Identifiers) != 3 || event.Identifiers[0] != sleep.ID {
		t.Fatalf("expected sorted identifiers, got %v", event.Identifiers)
	}

	store.SetPromptResult(false, nil)
	_ = authorizer.Request(context.Background(), healthkit.HeartRate)
	if len(events) != 1 {
		t.Fatalf("incomplete requests must not emit, got %d events", len(events))
	}
}

func TestActivityFailureIsLogged(t *testing.T) {
	store := newStore(t)
	log := &recorder{}
	boom := errors.New("sink down")
	authorizer := healthkit.NewAuthorizer(store,
		healthkit.WithOperationLogger(log),
		healthkit.WithActivityHooks(activity.HookFunc(func(context.Context, activity.Event) error { return boom })),
	)

	if err := authorizer.Request(context.Background(), healthkit.HeartRate); err != nil {
		t.Fatalf("activity failures must not fail the request: %v", err)
	}
	emitted := log.find(healthkit.OpEmitActivity)
	if len(emitted) != 1 || !errors.Is(emitted[0].Err, boom) {
		t.Fatalf("expected one logged emit failure, got %+v", emitted)
	}
}
