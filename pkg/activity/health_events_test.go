package activity

import (
	"testing"
	"time"
)

func TestBuildAuthorizationRequestedEventSortsIdentifiers(t *testing.T) {
	meta := map[string]any{"source": "onboarding"}
	at := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	input := AuthorizationEventInput{
		ActorID:    " actor ",
		Read:       []string{"HKQuantityTypeIdentifierStepCount", "HKQuantityTypeIdentifierHeartRate", "HKQuantityTypeIdentifierStepCount"},
		Share:      []string{"HKQuantityTypeIdentifierBodyMass"},
		Metadata:   meta,
		OccurredAt: at,
	}

	event := BuildAuthorizationRequestedEvent(input)

	if event.Verb != VerbAuthorizationRequested || event.ObjectType != ObjectTypeAuthorization {
		t.Fatalf("unexpected verb/object type: %+v", event)
	}
	want := "HKQuantityTypeIdentifierBodyMass,HKQuantityTypeIdentifierHeartRate,HKQuantityTypeIdentifierStepCount"
	if event.ObjectID != want {
		t.Fatalf("expected object id %q, got %q", want, event.ObjectID)
	}
	if len(event.Identifiers) != 3 || event.Identifiers[0] != "HKQuantityTypeIdentifierBodyMass" {
		t.Fatalf("expected sorted identifiers, got %v", event.Identifiers)
	}
	read, ok := event.Metadata["read"].([]string)
	if !ok || len(read) != 2 || read[0] != "HKQuantityTypeIdentifierHeartRate" {
		t.Fatalf("expected de-duplicated read list, got %v", event.Metadata["read"])
	}
	if event.ActorID != "actor" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.OccurredAt != at {
		t.Fatalf("expected occurred_at preserved, got %v", event.OccurredAt)
	}
	event.Metadata["source"] = "changed"
	if meta["source"] != "onboarding" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildAuthorizationRequestedEventFallbackObjectID(t *testing.T) {
	event := BuildAuthorizationRequestedEvent(AuthorizationEventInput{})
	if event.ObjectID != ObjectTypeAuthorization {
		t.Fatalf("expected fallback object id, got %q", event.ObjectID)
	}
	if event.Metadata != nil || event.Identifiers != nil {
		t.Fatalf("expected no metadata or identifiers, got %+v", event)
	}
}

func TestBuildBackgroundDeliveryEvents(t *testing.T) {
	enabled := BuildBackgroundDeliveryEnabledEvent(BackgroundDeliveryEventInput{
		Identifier: " HKQuantityTypeIdentifierHeartRate ",
		Frequency:  "hourly",
	})
	if enabled.Verb != VerbBackgroundDeliveryEnabled || enabled.ObjectID != "HKQuantityTypeIdentifierHeartRate" {
		t.Fatalf("unexpected enabled event: %+v", enabled)
	}
	if len(enabled.Identifiers) != 1 || enabled.Identifiers[0] != "HKQuantityTypeIdentifierHeartRate" {
		t.Fatalf("expected single identifier, got %v", enabled.Identifiers)
	}
	if enabled.Metadata["frequency"] != "hourly" {
		t.Fatalf("expected frequency metadata, got %v", enabled.Metadata)
	}

	disabled := BuildBackgroundDeliveryDisabledEvent(BackgroundDeliveryEventInput{})
	if disabled.Verb != VerbBackgroundDeliveryDisabled || disabled.ObjectID != ObjectTypeBackgroundDelivery {
		t.Fatalf("unexpected disabled event: %+v", disabled)
	}
}
