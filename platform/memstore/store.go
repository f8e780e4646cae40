// Package memstore is an in-memory platform.Store. It simulates the health
// store's catalog, unit math, predicate evaluation, authorization prompt and
// background delivery so the healthkit package can be exercised without a
// device.
//
// Completions run on their own goroutine unless WithSynchronousCallbacks is
// set; Wait blocks until every pending completion has run.
package memstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-healthkit/platform"
)

var (
	ErrUnavailable        = errors.New("memstore: health data is not available")
	ErrUnknownType        = errors.New("memstore: type is not registered")
	ErrIncompatibleSample = errors.New("memstore: sample unit does not match the type")
	ErrInvalidInterval    = errors.New("memstore: sample ends before it starts")
	ErrNotShareable       = errors.New("memstore: type cannot be shared")
	ErrNilQuery           = errors.New("memstore: nil query")
	ErrUnknownSortKey     = errors.New("memstore: unknown sort key")
)

// Option configures a Store.
type Option func(*Store)

// WithPredicateEngine selects the engine predicates are evaluated with. The
// default is NewExprEngine with a program cache.
func WithPredicateEngine(engine PredicateEngine) Option {
	return func(s *Store) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithAuthorizationPolicy sets what the simulated user grants. The default is
// AllowAll.
func WithAuthorizationPolicy(policy AuthorizationPolicy) Option {
	return func(s *Store) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithAvailability sets whether health data is available on the device.
func WithAvailability(available bool) Option {
	return func(s *Store) {
		s.available = available
	}
}

// WithSynchronousCallbacks runs completions on the calling goroutine.
func WithSynchronousCallbacks() Option {
	return func(s *Store) {
		s.synchronous = true
	}
}

// ExecutedQuery records one Execute call.
type ExecutedQuery struct {
	Identifier string
	Kind       platform.Kind
	Predicate  platform.Predicate
	Limit      int
	Sort       []platform.SortDescriptor
}

type completionResult struct {
	success bool
	err     error
}

// Store is an in-memory platform.Store. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	types   map[string]ObjectType
	samples map[string][]platform.Sample

	available      bool
	engine         PredicateEngine
	policy         AuthorizationPolicy
	statusOverride *platform.RequestStatus
	promptOverride *completionResult
	prompted       map[string]struct{}
	sharing        map[string]platform.AuthorizationStatus
	readDenied     map[string]struct{}
	prompts        int

	queryErr       error
	executed       []ExecutedQuery
	background     map[string]platform.UpdateFrequency
	backgroundNext *completionResult

	synchronous bool
	pending     sync.WaitGroup
}

var _ platform.Store = (*Store)(nil)

// NewStore constructs an empty, available store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		types:      map[string]ObjectType{},
		samples:    map[string][]platform.Sample{},
		available:  true,
		engine:     NewExprEngine(ExprWithProgramCache(NewProgramCache())),
		policy:     AllowAll,
		prompted:   map[string]struct{}{},
		sharing:    map[string]platform.AuthorizationStatus{},
		readDenied: map[string]struct{}{},
		background: map[string]platform.UpdateFrequency{},
	}
	s.registerLocked(platform.KindWorkout, WorkoutTypeIdentifier, "")
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) registerLocked(kind platform.Kind, identifier string, unit platform.Unit) ObjectType {
	t := newObjectType(kind, identifier, unit)
	s.types[platform.TypeKey(t)] = t
	return t
}

// RegisterQuantityType adds a quantity type. Samples added through
// AddQuantitySample must be compatible with unit; an empty unit accepts any
// known unit.
func (s *Store) RegisterQuantityType(identifier string, unit platform.Unit) error {
	if identifier == "" {
		return fmt.Errorf("memstore: identifier must not be empty")
	}
	if unit != "" && !KnownUnit(unit) {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerLocked(platform.KindQuantity, identifier, unit)
	return nil
}

// RegisterType adds a category, characteristic, correlation or document type.
func (s *Store) RegisterType(kind platform.Kind, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("memstore: identifier must not be empty")
	}
	switch kind {
	case platform.KindCategory, platform.KindCharacteristic, platform.KindCorrelation, platform.KindDocument:
	default:
		return fmt.Errorf("memstore: cannot register %s type %q", kind, identifier)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerLocked(kind, identifier, "")
	return nil
}

func (s *Store) lookup(kind platform.Kind, identifier string) (platform.ObjectType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[kind.String()+":"+identifier]
	if !ok {
		return nil, false
	}
	return newObjectType(t.kind, t.identifier, t.unit), true
}

func (s *Store) QuantityType(identifier string) (platform.ObjectType, bool) {
	return s.lookup(platform.KindQuantity, identifier)
}

func (s *Store) CategoryType(identifier string) (platform.ObjectType, bool) {
	return s.lookup(platform.KindCategory, identifier)
}

func (s *Store) CharacteristicType(identifier string) (platform.ObjectType, bool) {
	return s.lookup(platform.KindCharacteristic, identifier)
}

func (s *Store) CorrelationType(identifier string) (platform.ObjectType, bool) {
	return s.lookup(platform.KindCorrelation, identifier)
}

func (s *Store) DocumentType(identifier string) (platform.ObjectType, bool) {
	return s.lookup(platform.KindDocument, identifier)
}

func (s *Store) WorkoutType() platform.ObjectType {
	t, _ := s.lookup(platform.KindWorkout, WorkoutTypeIdentifier)
	return t
}

// Types lists every registered type ordered by kind and identifier.
func (s *Store) Types() []platform.ObjectType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := platform.NewTypeSet()
	for _, t := range s.types {
		set.Add(t)
	}
	return set.Types()
}

// AddQuantitySample stores a quantity sample for a registered quantity type.
func (s *Store) AddQuantitySample(identifier string, start, end time.Time, value float64, unit platform.Unit) (*QuantitySample, error) {
	quantity, err := NewQuantity(value, unit)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.types[platform.KindQuantity.String()+":"+identifier]
	if !ok {
		return nil, fmt.Errorf("%w: quantity %q", ErrUnknownType, identifier)
	}
	if t.unit != "" && !Compatible(t.unit, unit) {
		return nil, fmt.Errorf("%w: %q is not compatible with %q", ErrIncompatibleSample, unit, t.unit)
	}
	sample := NewQuantitySample(t, start, end, quantity)
	s.appendLocked(sample)
	return sample, nil
}

// AddCategorySample stores a category sample for a registered category type.
func (s *Store) AddCategorySample(identifier string, start, end time.Time, value int) (*CategorySample, error) {
	if end.Before(start) {
		return nil, ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.types[platform.KindCategory.String()+":"+identifier]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrUnknownType, identifier)
	}
	sample := NewCategorySample(t, start, end, value)
	s.appendLocked(sample)
	return sample, nil
}

// Insert stores arbitrary samples under their sample type, skipping unit
// validation. The type must be registered.
func (s *Store) Insert(samples ...platform.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sample := range samples {
		if sample == nil || sample.SampleType() == nil {
			return fmt.Errorf("memstore: sample without type")
		}
		key := platform.TypeKey(sample.SampleType())
		if _, ok := s.types[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownType, key)
		}
		s.appendLocked(sample)
	}
	return nil
}

func (s *Store) appendLocked(sample platform.Sample) {
	key := platform.TypeKey(sample.SampleType())
	s.samples[key] = append(s.samples[key], sample)
}

// SampleCount reports how many samples are stored for identifier of kind.
func (s *Store) SampleCount(kind platform.Kind, identifier string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples[kind.String()+":"+identifier])
}

// SetAvailable toggles health data availability.
func (s *Store) SetAvailable(available bool) {
	s.mu.Lock()
	s.available = available
	s.mu.Unlock()
}

func (s *Store) IsHealthDataAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// SetAuthorizationPolicy replaces the prompt policy.
func (s *Store) SetAuthorizationPolicy(policy AuthorizationPolicy) {
	if policy == nil {
		policy = DenyAll
	}
	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
}

// SetRequestStatus forces the answer of AuthorizationRequestStatus.
func (s *Store) SetRequestStatus(status platform.RequestStatus) {
	s.mu.Lock()
	s.statusOverride = &status
	s.mu.Unlock()
}

// ClearRequestStatus restores the computed request status.
func (s *Store) ClearRequestStatus() {
	s.mu.Lock()
	s.statusOverride = nil
	s.mu.Unlock()
}

// SetPromptResult forces the completion of the next and later prompts. The
// policy is not consulted while set.
func (s *Store) SetPromptResult(success bool, err error) {
	s.mu.Lock()
	s.promptOverride = &completionResult{success: success, err: err}
	s.mu.Unlock()
}

// ClearPromptResult restores policy-driven prompts.
func (s *Store) ClearPromptResult() {
	s.mu.Lock()
	s.promptOverride = nil
	s.mu.Unlock()
}

// Prompts reports how many times the authorization prompt ran.
func (s *Store) Prompts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompts
}

func (s *Store) AuthorizationRequestStatus(share, read platform.TypeSet, completion platform.StatusCompletion) {
	if completion == nil {
		return
	}
	status, err := s.requestStatus(share, read)
	s.dispatch(func() { completion(status, err) })
}

func (s *Store) requestStatus(share, read platform.TypeSet) (platform.RequestStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.available {
		return platform.RequestStatusUnknown, ErrUnavailable
	}
	if s.statusOverride != nil {
		return *s.statusOverride, nil
	}
	status := platform.RequestStatusUnnecessary
	for _, request := range accessRequests(share, read) {
		key := platform.TypeKey(request.t)
		if _, ok := s.types[key]; !ok {
			return platform.RequestStatusUnknown, fmt.Errorf("%w: %s", ErrUnknownType, key)
		}
		if _, ok := s.prompted[promptKey(request.access, key)]; !ok {
			status = platform.RequestStatusShouldRequest
		}
	}
	return status, nil
}

func (s *Store) RequestAuthorization(share, read platform.TypeSet, completion platform.Completion) {
	success, err := s.prompt(share, read)
	if completion == nil {
		return
	}
	s.dispatch(func() { completion(success, err) })
}

func (s *Store) prompt(share, read platform.TypeSet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.available {
		return false, ErrUnavailable
	}
	s.prompts++
	if s.promptOverride != nil {
		return s.promptOverride.success, s.promptOverride.err
	}
	requests := accessRequests(share, read)
	for _, request := range requests {
		key := platform.TypeKey(request.t)
		if _, ok := s.types[key]; !ok {
			return false, fmt.Errorf("%w: %s", ErrUnknownType, key)
		}
		if request.access == AccessShare && !shareable(request.t.Kind()) {
			return false, fmt.Errorf("%w: %s", ErrNotShareable, key)
		}
	}
	for _, request := range requests {
		key := platform.TypeKey(request.t)
		granted, err := s.policy.Grant(AccessRequest{
			Identifier: request.t.Identifier(),
			Kind:       request.t.Kind(),
			Access:     request.access,
		})
		if err != nil {
			return false, err
		}
		s.prompted[promptKey(request.access, key)] = struct{}{}
		switch request.access {
		case AccessShare:
			if granted {
				s.sharing[key] = platform.AuthorizationSharingAuthorized
			} else {
				s.sharing[key] = platform.AuthorizationSharingDenied
			}
		case AccessRead:
			if granted {
				delete(s.readDenied, key)
			} else {
				s.readDenied[key] = struct{}{}
			}
		}
	}
	return true, nil
}

func (s *Store) AuthorizationStatus(t platform.ObjectType) platform.AuthorizationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sharing[platform.TypeKey(t)]
}

type accessRequest struct {
	t      platform.ObjectType
	access Access
}

func accessRequests(share, read platform.TypeSet) []accessRequest {
	out := make([]accessRequest, 0, share.Len()+read.Len())
	for _, t := range share.Types() {
		out = append(out, accessRequest{t: t, access: AccessShare})
	}
	for _, t := range read.Types() {
		out = append(out, accessRequest{t: t, access: AccessRead})
	}
	return out
}

func promptKey(access Access, typeKey string) string {
	return string(access) + "|" + typeKey
}

func shareable(kind platform.Kind) bool {
	return kind == platform.KindQuantity || kind == platform.KindCategory || kind == platform.KindWorkout
}

// SetQueryError makes every later query deliver err.
func (s *Store) SetQueryError(err error) {
	s.mu.Lock()
	s.queryErr = err
	s.mu.Unlock()
}

// ExecutedQueries returns every query passed to Execute, in order.
func (s *Store) ExecutedQueries() []ExecutedQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ExecutedQuery(nil), s.executed...)
}

// Execute runs query once. Samples of a type the user denied read access to
// are hidden, as the platform does.
func (s *Store) Execute(query *platform.SampleQuery) error {
	if query == nil {
		return ErrNilQuery
	}
	if !query.MarkExecuted() {
		return platform.ErrQueryAlreadyExecuted
	}
	sampleType := query.SampleType()
	key := platform.TypeKey(sampleType)

	s.mu.Lock()
	s.executed = append(s.executed, ExecutedQuery{
		Identifier: identifierOf(sampleType),
		Kind:       kindOf(sampleType),
		Predicate:  query.Predicate(),
		Limit:      query.Limit(),
		Sort:       query.SortDescriptors(),
	})
	queryErr := s.queryErr
	_, registered := s.types[key]
	_, hidden := s.readDenied[key]
	var candidates []platform.Sample
	if !hidden {
		candidates = append(candidates, s.samples[key]...)
	}
	engine := s.engine
	s.mu.Unlock()

	s.dispatch(func() {
		switch {
		case queryErr != nil:
			query.Deliver(nil, queryErr)
		case !registered:
			query.Deliver(nil, fmt.Errorf("%w: %s", ErrUnknownType, key))
		default:
			samples, err := run(engine, query, candidates)
			query.Deliver(samples, err)
		}
	})
	return nil
}

func run(engine PredicateEngine, query *platform.SampleQuery, candidates []platform.Sample) ([]platform.Sample, error) {
	predicate := query.Predicate()
	out := candidates
	if predicate.Expression != "" {
		compiled, err := engine.Compile(predicate)
		if err != nil {
			return nil, err
		}
		args := predicateArgs(predicate.Args)
		out = make([]platform.Sample, 0, len(candidates))
		for _, sample := range candidates {
			vars := make(map[string]any, len(args)+1)
			for key, value := range args {
				vars[key] = value
			}
			vars["sample"] = sampleBinding(sample)
			matched, err := compiled.Match(vars)
			if err != nil {
				return nil, err
			}
			if matched {
				out = append(out, sample)
			}
		}
	}
	if err := sortSamples(out, query.SortDescriptors()); err != nil {
		return nil, err
	}
	if limit := query.Limit(); limit > platform.NoLimit && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortSamples(samples []platform.Sample, descriptors []platform.SortDescriptor) error {
	for _, descriptor := range descriptors {
		switch descriptor.Key {
		case platform.SortKeyStartDate, platform.SortKeyEndDate, platform.SortKeyQuantity:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSortKey, descriptor.Key)
		}
	}
	sort.SliceStable(samples, func(i, j int) bool {
		for _, descriptor := range descriptors {
			c := compareBy(descriptor.Key, samples[i], samples[j])
			if c == 0 {
				continue
			}
			if descriptor.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return nil
}

func compareBy(key string, a, b platform.Sample) int {
	switch key {
	case platform.SortKeyStartDate:
		return a.StartDate().Compare(b.StartDate())
	case platform.SortKeyEndDate:
		return a.EndDate().Compare(b.EndDate())
	default:
		return compareFloat(sortValue(a), sortValue(b))
	}
}

func sortValue(sample platform.Sample) float64 {
	switch s := sample.(type) {
	case *QuantitySample:
		return s.quantity.baseValue()
	case *CategorySample:
		return float64(s.value)
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SetBackgroundDeliveryResult forces the completion of later background
// delivery changes. The registry is left untouched while set.
func (s *Store) SetBackgroundDeliveryResult(success bool, err error) {
	s.mu.Lock()
	s.backgroundNext = &completionResult{success: success, err: err}
	s.mu.Unlock()
}

// ClearBackgroundDeliveryResult restores normal background delivery changes.
func (s *Store) ClearBackgroundDeliveryResult() {
	s.mu.Lock()
	s.backgroundNext = nil
	s.mu.Unlock()
}

// BackgroundDeliveries returns the enabled frequencies keyed by identifier.
func (s *Store) BackgroundDeliveries() map[string]platform.UpdateFrequency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]platform.UpdateFrequency, len(s.background))
	for key, frequency := range s.background {
		out[s.types[key].identifier] = frequency
	}
	return out
}

func (s *Store) EnableBackgroundDelivery(t platform.ObjectType, frequency platform.UpdateFrequency, completion platform.Completion) {
	success, err := s.toggleBackground(t, func(key string) {
		s.background[key] = frequency
	})
	if completion != nil {
		s.dispatch(func() { completion(success, err) })
	}
}

func (s *Store) DisableBackgroundDelivery(t platform.ObjectType, completion platform.Completion) {
	success, err := s.toggleBackground(t, func(key string) {
		delete(s.background, key)
	})
	if completion != nil {
		s.dispatch(func() { completion(success, err) })
	}
}

func (s *Store) toggleBackground(t platform.ObjectType, apply func(key string)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backgroundNext != nil {
		return s.backgroundNext.success, s.backgroundNext.err
	}
	key := platform.TypeKey(t)
	if _, ok := s.types[key]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownType, key)
	}
	apply(key)
	return true, nil
}

func (s *Store) dispatch(fn func()) {
	if s.synchronous {
		fn()
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		fn()
	}()
}

// Wait blocks until every dispatched completion has returned.
func (s *Store) Wait() {
	s.pending.Wait()
}

func identifierOf(t platform.ObjectType) string {
	if t == nil {
		return ""
	}
	return t.Identifier()
}

func kindOf(t platform.ObjectType) platform.Kind {
	if t == nil {
		return -1
	}
	return t.Kind()
}
