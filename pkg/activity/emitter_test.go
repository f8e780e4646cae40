package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitterStampsActorChannelAndTime(t *testing.T) {
	at := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	recorder := &Recorder{}
	emitter := NewEmitter(Hooks{recorder}, Config{
		Enabled: true,
		ActorID: "user-1",
		Now:     func() time.Time { return at },
	})

	err := emitter.Emit(context.Background(), BuildAuthorizationRequestedEvent(AuthorizationEventInput{
		Read: []string{"HKQuantityTypeIdentifierStepCount"},
	}))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	events := recorder.Events()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	got := events[0]
	if got.Channel != DefaultChannel || got.ActorID != "user-1" || !got.OccurredAt.Equal(at) {
		t.Fatalf("expected emitter defaults, got %+v", got)
	}
}

func TestEmitterKeepsEventValues(t *testing.T) {
	at := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	recorder := &Recorder{}
	emitter := NewEmitter(Hooks{recorder}, Config{Enabled: true, Channel: "mobile", ActorID: "user-1"})

	err := emitter.Emit(context.Background(), BuildBackgroundDeliveryEnabledEvent(BackgroundDeliveryEventInput{
		ActorID:    "device-7",
		Channel:    "watch",
		Identifier: "HKQuantityTypeIdentifierHeartRate",
		OccurredAt: at,
	}))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	got := recorder.Events()[0]
	if got.Channel != "watch" || got.ActorID != "device-7" || !got.OccurredAt.Equal(at) {
		t.Fatalf("expected event values kept, got %+v", got)
	}
}

func TestEmitterDisabled(t *testing.T) {
	recorder := &Recorder{}

	if NewEmitter(Hooks{recorder}, Config{}).Enabled() {
		t.Fatalf("expected emitter disabled without Enabled")
	}
	if NewEmitter(Hooks{nil}, Config{Enabled: true}).Enabled() {
		t.Fatalf("expected emitter disabled with only nil hooks")
	}
	var nilEmitter *Emitter
	if err := nilEmitter.Emit(context.Background(), BuildBackgroundDeliveryDisabledEvent(BackgroundDeliveryEventInput{})); err != nil {
		t.Fatalf("nil emitter: %v", err)
	}

	_ = NewEmitter(Hooks{recorder}, Config{}).Emit(context.Background(), BuildBackgroundDeliveryDisabledEvent(BackgroundDeliveryEventInput{}))
	if len(recorder.Events()) != 0 {
		t.Fatalf("expected no events from a disabled emitter")
	}
}

func TestHooksFanOutHealthEventsAndJoinErrors(t *testing.T) {
	first := &Recorder{}
	failing := &Recorder{Err: errors.New("sink offline")}
	var seen []string
	hooks := Hooks{first, nil, failing, HookFunc(func(_ context.Context, event Event) error {
		seen = append(seen, event.ObjectID)
		return nil
	})}

	err := hooks.Notify(context.Background(), BuildBackgroundDeliveryEnabledEvent(BackgroundDeliveryEventInput{
		Identifier: "HKQuantityTypeIdentifierStepCount",
		Frequency:  "daily",
	}))
	if err == nil || err.Error() != "sink offline" {
		t.Fatalf("expected joined hook error, got %v", err)
	}
	if len(first.Events()) != 1 || len(failing.Events()) != 1 {
		t.Fatalf("expected every hook notified")
	}
	if len(seen) != 1 || seen[0] != "HKQuantityTypeIdentifierStepCount" {
		t.Fatalf("unexpected object ids %v", seen)
	}
	if got := first.Verbs(); len(got) != 1 || got[0] != VerbBackgroundDeliveryEnabled {
		t.Fatalf("unexpected verbs %v", got)
	}
}

func TestHooksDropUnroutableEvents(t *testing.T) {
	recorder := &Recorder{}

	err := Hooks{recorder}.Notify(context.Background(), Event{Verb: VerbAuthorizationRequested, ObjectType: ObjectTypeAuthorization})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(recorder.Events()) != 0 {
		t.Fatalf("expected event without object id or identifiers dropped")
	}
}

func TestNormalizeEventDerivesObjectIDFromIdentifiers(t *testing.T) {
	meta := map[string]any{"frequency": "hourly"}
	event := NormalizeEvent(Event{
		Verb:        " " + VerbBackgroundDeliveryEnabled + " ",
		ObjectType:  ObjectTypeBackgroundDelivery,
		Identifiers: []string{"HKQuantityTypeIdentifierStepCount", " ", "HKQuantityTypeIdentifierHeartRate", "HKQuantityTypeIdentifierStepCount"},
		Metadata:    meta,
	})

	if event.Verb != VerbBackgroundDeliveryEnabled {
		t.Fatalf("expected trimmed verb, got %q", event.Verb)
	}
	if event.ObjectID != "HKQuantityTypeIdentifierHeartRate,HKQuantityTypeIdentifierStepCount" {
		t.Fatalf("unexpected derived object id %q", event.ObjectID)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at defaulted")
	}
	event.Metadata["frequency"] = "daily"
	if meta["frequency"] != "hourly" {
		t.Fatalf("expected metadata cloned")
	}
}
