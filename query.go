package healthkit

import (
	"math"
	"time"

	"github.com/goliatone/go-healthkit/platform"
)

// Limit caps the number of samples a query returns.
type Limit struct {
	max     uint
	bounded bool
}

// NoLimit returns every matching sample.
var NoLimit = Limit{}

// MaxSamples caps a query at n samples.
func MaxSamples(n uint) Limit {
	return Limit{max: n, bounded: true}
}

// Max reports the cap and whether one is set.
func (l Limit) Max() (uint, bool) {
	return l.max, l.bounded
}

func (l Limit) platformLimit() int {
	if !l.bounded {
		return platform.NoLimit
	}
	if l.max > math.MaxInt {
		return math.MaxInt
	}
	return int(l.max)
}

// SortField names a sample attribute to order by.
type SortField string

const (
	SortByStartDate SortField = platform.SortKeyStartDate
	SortByEndDate   SortField = platform.SortKeyEndDate
	SortByQuantity  SortField = platform.SortKeyQuantity
)

// SortKey orders results by one field.
type SortKey struct {
	Field     SortField
	Ascending bool
}

// Ascending sorts by field, smallest first.
func Ascending(field SortField) SortKey {
	return SortKey{Field: field, Ascending: true}
}

// Descending sorts by field, largest first.
func Descending(field SortField) SortKey {
	return SortKey{Field: field}
}

// QueryOptions bounds a fetch. Start must not be after End. An empty Sort
// returns the newest samples first.
type QueryOptions struct {
	Start time.Time
	End   time.Time
	Limit Limit
	Sort  []SortKey
}

// QueryOption customises NewQueryOptions.
type QueryOption func(*QueryOptions)

// NewQueryOptions builds options for the inclusive window [start, end].
func NewQueryOptions(start, end time.Time, opts ...QueryOption) QueryOptions {
	options := QueryOptions{Start: start, End: end, Limit: NoLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// WithLimit sets the sample cap.
func WithLimit(limit Limit) QueryOption {
	return func(o *QueryOptions) {
		o.Limit = limit
	}
}

// WithSort appends sort keys in priority order.
func WithSort(keys ...SortKey) QueryOption {
	return func(o *QueryOptions) {
		o.Sort = append(o.Sort, keys...)
	}
}

func (o QueryOptions) validate() error {
	if o.Start.After(o.End) {
		return ErrInvalidTimeWindow
	}
	return nil
}

func (o QueryOptions) sortDescriptors() []platform.SortDescriptor {
	if len(o.Sort) == 0 {
		return []platform.SortDescriptor{{Key: platform.SortKeyStartDate, Ascending: false}}
	}
	out := make([]platform.SortDescriptor, 0, len(o.Sort))
	for _, key := range o.Sort {
		out = append(out, platform.SortDescriptor{Key: string(key.Field), Ascending: key.Ascending})
	}
	return out
}

// QueryResult is one converted sample.
type QueryResult[F Family] struct {
	SampleID string
	Start    time.Time
	End      time.Time
	Value    float64
	Unit     Unit[F]
}

// Measurement is the family-erased form of QueryResult.
type Measurement struct {
	SampleID string    `json:"sample_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Value    float64   `json:"value"`
	Unit     string    `json:"unit"`
}
