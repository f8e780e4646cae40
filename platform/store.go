// Package platform describes the boundary with the external health-data store.
//
// The store owns sample persistence, the type catalog, unit math and the
// authorization prompt. Every asynchronous operation reports through a
// completion callback that the store may invoke on any goroutine.
package platform

// Catalog resolves identifiers against the store's live type catalog. Each
// lookup returns false when the store does not know the identifier.
type Catalog interface {
	QuantityType(identifier string) (ObjectType, bool)
	CategoryType(identifier string) (ObjectType, bool)
	CharacteristicType(identifier string) (ObjectType, bool)
	CorrelationType(identifier string) (ObjectType, bool)
	DocumentType(identifier string) (ObjectType, bool)
	WorkoutType() ObjectType
}

// Availability reports whether health data can be used on this device.
type Availability interface {
	IsHealthDataAvailable() bool
}

// StatusCompletion receives the outcome of AuthorizationRequestStatus.
type StatusCompletion func(status RequestStatus, err error)

// Completion receives the outcome of prompts and toggles. success only says
// the flow completed; for authorization it does not reveal what was granted.
type Completion func(success bool, err error)

// Authorization drives the platform permission workflow.
type Authorization interface {
	Availability
	AuthorizationRequestStatus(share, read TypeSet, completion StatusCompletion)
	RequestAuthorization(share, read TypeSet, completion Completion)
	AuthorizationStatus(t ObjectType) AuthorizationStatus
}

// QueryRunner executes sample queries. A query may only run once; a second
// Execute returns ErrQueryAlreadyExecuted.
type QueryRunner interface {
	Execute(query *SampleQuery) error
}

// BackgroundDelivery toggles platform wake-ups for new samples of a type.
type BackgroundDelivery interface {
	EnableBackgroundDelivery(t ObjectType, frequency UpdateFrequency, completion Completion)
	DisableBackgroundDelivery(t ObjectType, completion Completion)
}

// Store is the full platform surface.
type Store interface {
	Catalog
	Authorization
	QueryRunner
	BackgroundDelivery
}
