package healthkit_test

import (
	"sync"
	"testing"
	"time"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/platform"
	"github.com/goliatone/go-healthkit/platform/memstore"
)

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...memstore.Option) *memstore.Store {
	t.Helper()
	return memstore.NewStore(append([]memstore.Option{memstore.WithDefaultCatalog(), memstore.WithSynchronousCallbacks()}, opts...)...)
}

func addQuantity(t *testing.T, store *memstore.Store, identifier string, start time.Time, value float64, unit platform.Unit) *memstore.QuantitySample {
	t.Helper()
	sample, err := store.AddQuantitySample(identifier, start, start.Add(time.Minute), value, unit)
	if err != nil {
		t.Fatalf("add sample: %v", err)
	}
	return sample
}

// recorder collects operation events.
type recorder struct {
	mu     sync.Mutex
	events []healthkit.OperationEvent
}

func (r *recorder) LogOperation(event healthkit.OperationEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recorder) last(t *testing.T) healthkit.OperationEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatalf("expected an operation event")
	}
	return r.events[len(r.events)-1]
}

func (r *recorder) find(operation string) []healthkit.OperationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []healthkit.OperationEvent
	for _, event := range r.events {
		if event.Operation == operation {
			out = append(out, event)
		}
	}
	return out
}
