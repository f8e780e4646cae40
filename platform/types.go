package platform

import (
	"sort"
	"time"
)

// Kind identifies which platform catalog owns an object type.
type Kind int

const (
	KindQuantity Kind = iota
	KindCategory
	KindCharacteristic
	KindCorrelation
	KindDocument
	KindWorkout
)

func (k Kind) String() string {
	switch k {
	case KindQuantity:
		return "quantity"
	case KindCategory:
		return "category"
	case KindCharacteristic:
		return "characteristic"
	case KindCorrelation:
		return "correlation"
	case KindDocument:
		return "document"
	case KindWorkout:
		return "workout"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name back to its value.
func ParseKind(name string) (Kind, bool) {
	for k := KindQuantity; k <= KindWorkout; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// ObjectType is a platform handle for one entry of its type catalog. Two
// handles for the same kind and identifier describe the same type even when
// they are distinct instances.
type ObjectType interface {
	Identifier() string
	Kind() Kind
}

// TypeKey returns the identity used to compare object types.
func TypeKey(t ObjectType) string {
	if t == nil {
		return ""
	}
	return t.Kind().String() + ":" + t.Identifier()
}

// TypeSet is a set of object types keyed by TypeKey.
type TypeSet struct {
	types map[string]ObjectType
}

// NewTypeSet builds a set from types, collapsing duplicates.
func NewTypeSet(types ...ObjectType) TypeSet {
	set := TypeSet{}
	for _, t := range types {
		set.Add(t)
	}
	return set
}

// Add inserts t unless an equivalent type is already present.
func (s *TypeSet) Add(t ObjectType) {
	if t == nil {
		return
	}
	if s.types == nil {
		s.types = map[string]ObjectType{}
	}
	key := TypeKey(t)
	if _, ok := s.types[key]; ok {
		return
	}
	s.types[key] = t
}

// Contains reports whether an equivalent type is in the set.
func (s TypeSet) Contains(t ObjectType) bool {
	if t == nil || s.types == nil {
		return false
	}
	_, ok := s.types[TypeKey(t)]
	return ok
}

func (s TypeSet) Len() int {
	return len(s.types)
}

// Types returns the members ordered by TypeKey.
func (s TypeSet) Types() []ObjectType {
	if len(s.types) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.types))
	for key := range s.types {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]ObjectType, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.types[key])
	}
	return out
}

// Unit is the platform's unit string, e.g. "m", "degC" or "count/min".
type Unit string

func (u Unit) String() string {
	return string(u)
}

// Quantity is a platform-owned scalar with a unit. The platform owns the unit
// math: callers check IsCompatible before asking for DoubleValue.
type Quantity interface {
	IsCompatible(unit Unit) bool
	DoubleValue(unit Unit) float64
}

// Sample is one stored measurement over a time interval.
type Sample interface {
	UUID() string
	SampleType() ObjectType
	StartDate() time.Time
	EndDate() time.Time
}

// QuantitySample is a sample carrying a Quantity.
type QuantitySample interface {
	Sample
	Quantity() Quantity
}

// RequestStatus is the platform answer to "would the user be prompted".
type RequestStatus int

const (
	RequestStatusUnknown RequestStatus = iota
	RequestStatusShouldRequest
	RequestStatusUnnecessary
)

// AuthorizationStatus is the per-type sharing status reported by the platform.
type AuthorizationStatus int

const (
	AuthorizationNotDetermined AuthorizationStatus = iota
	AuthorizationSharingDenied
	AuthorizationSharingAuthorized
)

// UpdateFrequency controls how often background delivery wakes the caller.
type UpdateFrequency int

const (
	UpdateFrequencyImmediate UpdateFrequency = iota + 1
	UpdateFrequencyHourly
	UpdateFrequencyDaily
	UpdateFrequencyWeekly
)

func (f UpdateFrequency) String() string {
	switch f {
	case UpdateFrequencyImmediate:
		return "immediate"
	case UpdateFrequencyHourly:
		return "hourly"
	case UpdateFrequencyDaily:
		return "daily"
	case UpdateFrequencyWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

// ParseUpdateFrequency maps a frequency name back to its value.
func ParseUpdateFrequency(name string) (UpdateFrequency, bool) {
	for f := UpdateFrequencyImmediate; f <= UpdateFrequencyWeekly; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}
