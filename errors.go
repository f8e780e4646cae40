package healthkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-healthkit/platform"
)

var (
	ErrUndefinedPlatformType = errors.New("healthkit: undefined platform type")
	ErrUnknownCategory       = errors.New("healthkit: unknown biometric category")
	ErrUnsupportedSampleType = errors.New("healthkit: unsupported sample type")
	ErrIncompatibleUnit      = errors.New("healthkit: incompatible unit")
	ErrUnknownUnit           = errors.New("healthkit: unknown unit")
	ErrInvalidTimeWindow     = errors.New("healthkit: query start is after end")
	ErrUnsupportedStatus     = errors.New("healthkit: unsupported authorization status")
	ErrRequestDenied         = errors.New("healthkit: authorization request was not completed")
	ErrRequestFailed         = errors.New("healthkit: authorization request failed")

	ErrBackgroundDeliveryRejected = errors.New("healthkit: background delivery change rejected")
)

// UndefinedTypeError reports an identifier the platform catalog does not know.
type UndefinedTypeError struct {
	Identifier string
	Category   Category
}

func (e *UndefinedTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("healthkit: no %s type for identifier=%q", e.Category, e.Identifier)
}

func (e *UndefinedTypeError) Unwrap() error { return ErrUndefinedPlatformType }

// UnknownCategoryError reports a Category value outside the closed set.
type UnknownCategoryError struct {
	Category Category
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("healthkit: unknown biometric category %d", int(e.Category))
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// UnsupportedSampleTypeError carries the batch that contained a non-quantity
// sample.
type UnsupportedSampleTypeError struct {
	Samples []platform.Sample
}

func (e *UnsupportedSampleTypeError) Error() string {
	kinds := make([]string, 0, len(e.Samples))
	seen := map[string]struct{}{}
	for _, sample := range e.Samples {
		if _, ok := sample.(platform.QuantitySample); ok {
			continue
		}
		key := "<nil>"
		if sample != nil {
			key = platform.TypeKey(sample.SampleType())
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kinds = append(kinds, key)
	}
	return fmt.Sprintf("healthkit: unsupported sample type in batch of %d: %s", len(e.Samples), strings.Join(kinds, ","))
}

func (e *UnsupportedSampleTypeError) Unwrap() error { return ErrUnsupportedSampleType }

// IncompatibleUnitError reports a sample whose quantity cannot be expressed in
// the requested unit.
type IncompatibleUnitError struct {
	SampleID  string
	Type      string
	Unit      string
	Dimension Dimension
}

func (e *IncompatibleUnitError) Error() string {
	return fmt.Sprintf("healthkit: sample %s of type=%q is not compatible with unit %q (%s)", e.SampleID, e.Type, e.Unit, e.Dimension)
}

func (e *IncompatibleUnitError) Unwrap() error { return ErrIncompatibleUnit }

// ConversionError groups the per-sample failures of one fetch.
type ConversionError struct {
	Failures []*IncompatibleUnitError
}

func (e *ConversionError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	return fmt.Sprintf("healthkit: %d samples failed unit conversion: %v", len(e.Failures), e.Failures[0])
}

func (e *ConversionError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		out = append(out, failure)
	}
	return out
}

// UnknownUnitError reports a unit symbol that is not a member of the family.
type UnknownUnitError struct {
	Symbol    string
	Dimension Dimension
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("healthkit: unit %q is not a %s unit", e.Symbol, e.Dimension)
}

func (e *UnknownUnitError) Unwrap() error { return ErrUnknownUnit }

// UnsupportedStatusError reports a platform status value this package does not
// map.
type UnsupportedStatusError struct {
	Kind  string
	Value int
}

func (e *UnsupportedStatusError) Error() string {
	return fmt.Sprintf("healthkit: unsupported %s status %d", e.Kind, e.Value)
}

func (e *UnsupportedStatusError) Unwrap() error { return ErrUnsupportedStatus }

// RequestFailedError carries the platform error raised by an authorization
// prompt.
type RequestFailedError struct {
	Err error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("healthkit: authorization request failed: %v", e.Err)
}

func (e *RequestFailedError) Unwrap() []error { return []error{ErrRequestFailed, e.Err} }
