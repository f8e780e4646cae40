package platform

import (
	"errors"
	"sync/atomic"
	"time"
)

// NoLimit asks the platform for every matching sample.
const NoLimit = 0

// ErrQueryAlreadyExecuted is returned by stores when a SampleQuery is executed
// a second time.
var ErrQueryAlreadyExecuted = errors.New("platform: sample query already executed")

// Sort keys understood by stores.
const (
	SortKeyStartDate = "startDate"
	SortKeyEndDate   = "endDate"
	SortKeyQuantity  = "quantity"
)

// SortDescriptor orders query results by one key.
type SortDescriptor struct {
	Key       string
	Ascending bool
}

// Predicate is a boolean expression evaluated by the store for each sample.
// The sample is bound as `sample` (with `start`, `end`, `uuid` fields); Args
// are bound as top-level variables. Time values are bound as Unix
// nanoseconds.
type Predicate struct {
	Expression string
	Args       map[string]any
}

// PredicateForSamples matches samples overlapping the inclusive window
// [start, end].
func PredicateForSamples(start, end time.Time) Predicate {
	return Predicate{
		Expression: "start <= sample.end && sample.start <= end",
		Args: map[string]any{
			"start": start,
			"end":   end,
		},
	}
}

// ResultsHandler receives the outcome of a SampleQuery. Stores call it once.
type ResultsHandler func(query *SampleQuery, samples []Sample, err error)

// SampleQuery is a single-use query for samples of one type.
type SampleQuery struct {
	sampleType ObjectType
	predicate  Predicate
	limit      int
	sort       []SortDescriptor
	handler    ResultsHandler
	executed   atomic.Bool
}

// NewSampleQuery prepares a query. limit is NoLimit or the maximum number of
// samples the store may return.
func NewSampleQuery(sampleType ObjectType, predicate Predicate, limit int, sort []SortDescriptor, handler ResultsHandler) *SampleQuery {
	return &SampleQuery{
		sampleType: sampleType,
		predicate:  predicate,
		limit:      limit,
		sort:       append([]SortDescriptor(nil), sort...),
		handler:    handler,
	}
}

func (q *SampleQuery) SampleType() ObjectType { return q.sampleType }

func (q *SampleQuery) Predicate() Predicate { return q.predicate }

func (q *SampleQuery) Limit() int { return q.limit }

func (q *SampleQuery) SortDescriptors() []SortDescriptor {
	return append([]SortDescriptor(nil), q.sort...)
}

// MarkExecuted flips the query into the executed state. It returns false when
// the query was already executed.
func (q *SampleQuery) MarkExecuted() bool {
	return q.executed.CompareAndSwap(false, true)
}

// Deliver hands results to the query handler.
func (q *SampleQuery) Deliver(samples []Sample, err error) {
	if q.handler == nil {
		return
	}
	q.handler(q, samples, err)
}
