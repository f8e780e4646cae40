package activity

import (
	"sort"
	"strings"
	"time"
)

const (
	VerbAuthorizationRequested     = "healthkit.authorization.requested"
	VerbBackgroundDeliveryEnabled  = "healthkit.background_delivery.enabled"
	VerbBackgroundDeliveryDisabled = "healthkit.background_delivery.disabled"

	ObjectTypeAuthorization      = "healthkit.authorization"
	ObjectTypeBackgroundDelivery = "healthkit.background_delivery"
)

// AuthorizationEventInput describes a completed authorization prompt.
// ActorID, Channel and OccurredAt may be left empty for the Emitter to fill.
type AuthorizationEventInput struct {
	ActorID    string
	Channel    string
	Read       []string
	Share      []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BackgroundDeliveryEventInput describes a background delivery change.
type BackgroundDeliveryEventInput struct {
	ActorID    string
	Channel    string
	Identifier string
	Frequency  string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildAuthorizationRequestedEvent constructs the event emitted after the
// authorization prompt completes. Identifiers is the sorted union of the
// read and share sets and doubles as the object ID.
func BuildAuthorizationRequestedEvent(input AuthorizationEventInput) Event {
	read := sortedUnique(input.Read)
	share := sortedUnique(input.Share)

	metadata := cloneMap(input.Metadata)
	if len(read) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["read"] = read
	}
	if len(share) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["share"] = share
	}

	identifiers := sortedUnique(append(append([]string{}, read...), share...))
	return Event{
		Verb:        VerbAuthorizationRequested,
		ActorID:     strings.TrimSpace(input.ActorID),
		ObjectType:  ObjectTypeAuthorization,
		ObjectID:    objectID(identifiers, ObjectTypeAuthorization),
		Channel:     strings.TrimSpace(input.Channel),
		Identifiers: identifiers,
		Metadata:    metadata,
		OccurredAt:  input.OccurredAt,
	}
}

// BuildBackgroundDeliveryEnabledEvent constructs the event emitted when the
// platform accepts a background delivery registration.
func BuildBackgroundDeliveryEnabledEvent(input BackgroundDeliveryEventInput) Event {
	return buildBackgroundDeliveryEvent(VerbBackgroundDeliveryEnabled, input)
}

// BuildBackgroundDeliveryDisabledEvent constructs the event emitted when a
// registration is removed.
func BuildBackgroundDeliveryDisabledEvent(input BackgroundDeliveryEventInput) Event {
	return buildBackgroundDeliveryEvent(VerbBackgroundDeliveryDisabled, input)
}

func buildBackgroundDeliveryEvent(verb string, input BackgroundDeliveryEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if frequency := strings.TrimSpace(input.Frequency); frequency != "" {
		metadata = ensureMetadata(metadata)
		metadata["frequency"] = frequency
	}

	identifiers := sortedUnique([]string{input.Identifier})
	return Event{
		Verb:        verb,
		ActorID:     strings.TrimSpace(input.ActorID),
		ObjectType:  ObjectTypeBackgroundDelivery,
		ObjectID:    objectID(identifiers, ObjectTypeBackgroundDelivery),
		Channel:     strings.TrimSpace(input.Channel),
		Identifiers: identifiers,
		Metadata:    metadata,
		OccurredAt:  input.OccurredAt,
	}
}

func objectID(identifiers []string, fallback string) string {
	if len(identifiers) == 0 {
		return fallback
	}
	return strings.Join(identifiers, ",")
}

func sortedUnique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
