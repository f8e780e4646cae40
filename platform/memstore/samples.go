package memstore

import (
	"time"

	"github.com/goliatone/go-healthkit/platform"
	"github.com/google/uuid"
)

// ObjectType is the simulator's type handle. Every catalog lookup returns a
// new handle with its own instance ID; handles compare by platform.TypeKey.
type ObjectType struct {
	identifier string
	kind       platform.Kind
	unit       platform.Unit
	instance   uuid.UUID
}

func newObjectType(kind platform.Kind, identifier string, unit platform.Unit) ObjectType {
	return ObjectType{identifier: identifier, kind: kind, unit: unit, instance: uuid.New()}
}

func (t ObjectType) Identifier() string { return t.identifier }

func (t ObjectType) Kind() platform.Kind { return t.kind }

// CanonicalUnit is the unit samples of a quantity type are validated against.
// It is empty for other kinds.
func (t ObjectType) CanonicalUnit() platform.Unit { return t.unit }

// InstanceID identifies this handle, not the type it describes.
func (t ObjectType) InstanceID() uuid.UUID { return t.instance }

// QuantitySample is a stored quantity measurement.
type QuantitySample struct {
	id       string
	typ      platform.ObjectType
	start    time.Time
	end      time.Time
	quantity Quantity
}

// NewQuantitySample builds a sample with a fresh UUID.
func NewQuantitySample(t platform.ObjectType, start, end time.Time, quantity Quantity) *QuantitySample {
	return &QuantitySample{
		id:       uuid.NewString(),
		typ:      t,
		start:    start,
		end:      end,
		quantity: quantity,
	}
}

func (s *QuantitySample) UUID() string { return s.id }

func (s *QuantitySample) SampleType() platform.ObjectType { return s.typ }

func (s *QuantitySample) StartDate() time.Time { return s.start }

func (s *QuantitySample) EndDate() time.Time { return s.end }

func (s *QuantitySample) Quantity() platform.Quantity { return s.quantity }

// CategorySample is a stored enumerated observation such as a sleep stage.
type CategorySample struct {
	id    string
	typ   platform.ObjectType
	start time.Time
	end   time.Time
	value int
}

// NewCategorySample builds a category sample with a fresh UUID.
func NewCategorySample(t platform.ObjectType, start, end time.Time, value int) *CategorySample {
	return &CategorySample{
		id:    uuid.NewString(),
		typ:   t,
		start: start,
		end:   end,
		value: value,
	}
}

func (s *CategorySample) UUID() string { return s.id }

func (s *CategorySample) SampleType() platform.ObjectType { return s.typ }

func (s *CategorySample) StartDate() time.Time { return s.start }

func (s *CategorySample) EndDate() time.Time { return s.end }

// Value is the category's raw enumeration value.
func (s *CategorySample) Value() int { return s.value }

// sampleBinding is the `sample` variable predicates see. Times are Unix
// nanoseconds so every engine compares them as integers.
func sampleBinding(sample platform.Sample) map[string]any {
	binding := map[string]any{
		"uuid":  sample.UUID(),
		"type":  sample.SampleType().Identifier(),
		"start": sample.StartDate().UnixNano(),
		"end":   sample.EndDate().UnixNano(),
	}
	switch s := sample.(type) {
	case *QuantitySample:
		binding["value"] = s.quantity.value
		binding["unit"] = string(s.quantity.unit)
	case *CategorySample:
		binding["value"] = int64(s.value)
	}
	return binding
}

// predicateArgs binds Args as top-level variables, converting times to Unix
// nanoseconds and ints to int64.
func predicateArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, value := range args {
		switch v := value.(type) {
		case time.Time:
			out[key] = v.UnixNano()
		case int:
			out[key] = int64(v)
		case platform.Unit:
			out[key] = string(v)
		default:
			out[key] = value
		}
	}
	return out
}
