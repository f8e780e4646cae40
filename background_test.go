package healthkit_test

import (
	"context"
	"errors"
	"testing"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/pkg/activity"
	"github.com/goliatone/go-healthkit/platform"
)

func TestBackgroundDeliveryToggle(t *testing.T) {
	store := newStore(t)
	var verbs []string
	log := &recorder{}
	delivery := healthkit.NewBackgroundDelivery(store,
		healthkit.WithOperationLogger(log),
		healthkit.WithActivityHooks(activity.HookFunc(func(_ context.Context, event activity.Event) error {
			verbs = append(verbs, event.Verb)
			return nil
		})),
	)

	if err := delivery.Enable(context.Background(), healthkit.HeartRate, platform.UpdateFrequencyHourly); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if got := store.BackgroundDeliveries()[heartRate]; got != platform.UpdateFrequencyHourly {
		t.Fatalf("expected hourly delivery, got %s", got)
	}
	if event := log.last(t); event.Operation != healthkit.OpEnableBackgroundDelivery || event.Message != "hourly" {
		t.Fatalf("unexpected operation event: %+v", event)
	}

	if err := delivery.Disable(context.Background(), healthkit.HeartRate); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if len(store.BackgroundDeliveries()) != 0 {
		t.Fatalf("expected delivery disabled")
	}

	want := []string{activity.VerbBackgroundDeliveryEnabled, activity.VerbBackgroundDeliveryDisabled}
	if len(verbs) != len(want) || verbs[0] != want[0] || verbs[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, verbs)
	}
}

func TestBackgroundDeliveryRejected(t *testing.T) {
	store := newStore(t)
	delivery := healthkit.NewBackgroundDelivery(store)

	store.SetBackgroundDeliveryResult(false, nil)
	err := delivery.Enable(context.Background(), healthkit.HeartRate, platform.UpdateFrequencyDaily)
	if !errors.Is(err, healthkit.ErrBackgroundDeliveryRejected) {
		t.Fatalf("expected ErrBackgroundDeliveryRejected, got %v", err)
	}

	boom := errors.New("entitlement missing")
	store.SetBackgroundDeliveryResult(false, boom)
	err = delivery.Disable(context.Background(), healthkit.HeartRate)
	if !errors.Is(err, healthkit.ErrBackgroundDeliveryRejected) || !errors.Is(err, boom) {
		t.Fatalf("expected both sentinel and platform error, got %v", err)
	}
}

func TestBackgroundDeliveryUndefinedType(t *testing.T) {
	delivery := healthkit.NewBackgroundDelivery(newStore(t))

	err := delivery.Enable(context.Background(), nil, platform.UpdateFrequencyDaily)
	if !errors.Is(err, healthkit.ErrUndefinedPlatformType) {
		t.Fatalf("expected ErrUndefinedPlatformType for nil biometric, got %v", err)
	}
	err = delivery.Disable(context.Background(), healthkit.Ref{ID: "HKQuantityTypeIdentifierNope"})
	if !errors.Is(err, healthkit.ErrUndefinedPlatformType) {
		t.Fatalf("expected ErrUndefinedPlatformType, got %v", err)
	}
}
