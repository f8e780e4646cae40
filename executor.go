package healthkit

import (
	"context"

	"github.com/goliatone/go-healthkit/platform"
)

// QueryStore is the platform surface the executor needs.
type QueryStore interface {
	platform.Catalog
	platform.QueryRunner
}

// QueryExecutor fetches samples for resolved descriptors and converts them
// into caller units. It is safe for concurrent use; every fetch issues its own
// platform query.
type QueryExecutor struct {
	store    QueryStore
	cfg      config
	resolver resolver
}

// NewQueryExecutor constructs an executor over store.
func NewQueryExecutor(store QueryStore, opts ...Option) *QueryExecutor {
	cfg := applyOptions(opts)
	return &QueryExecutor{
		store:    store,
		cfg:      cfg,
		resolver: resolver{catalog: store, cache: cfg.cache},
	}
}

// Fetch resolves c and fetches its samples in unit.
func Fetch[F Family](ctx context.Context, e *QueryExecutor, c Capability[F], unit Unit[F], options QueryOptions) ([]QueryResult[F], error) {
	d, err := e.resolver.resolve(c)
	if err != nil {
		e.logFailure(c.Identifier(), err)
		return nil, err
	}
	return FetchDescriptor(ctx, e, d, unit, options)
}

// FetchDescriptor fetches samples of d in unit. Samples the platform returns
// that cannot be expressed in unit are reported in a *ConversionError, which
// is returned alongside the samples that converted.
func FetchDescriptor[F Family](ctx context.Context, e *QueryExecutor, d Descriptor, unit Unit[F], options QueryOptions) ([]QueryResult[F], error) {
	if unit.IsZero() {
		err := &UnknownUnitError{Dimension: unit.Dimension()}
		e.logFailure(d.Identifier(), err)
		return nil, err
	}
	converted, err := e.fetch(ctx, d, unitSpec{symbol: unit.symbol, platform: unit.platform}, unit.Dimension(), options)
	if converted == nil {
		return nil, err
	}
	out := make([]QueryResult[F], 0, len(converted))
	for _, c := range converted {
		out = append(out, QueryResult[F]{
			SampleID: c.SampleID,
			Start:    c.Start,
			End:      c.End,
			Value:    c.Value,
			Unit:     unit,
		})
	}
	return out, err
}

// FetchMeasurements fetches b with a unit chosen at runtime by symbol.
func (e *QueryExecutor) FetchMeasurements(ctx context.Context, b Measurable, symbol string, options QueryOptions) ([]Measurement, error) {
	spec, err := lookupUnit(b.Dimension(), symbol)
	if err != nil {
		e.logFailure(b.Identifier(), err)
		return nil, err
	}
	d, err := e.resolver.resolve(b)
	if err != nil {
		e.logFailure(b.Identifier(), err)
		return nil, err
	}
	return e.fetch(ctx, d, spec, b.Dimension(), options)
}

func (e *QueryExecutor) fetch(ctx context.Context, d Descriptor, unit unitSpec, dimension Dimension, options QueryOptions) (out []Measurement, err error) {
	started := e.cfg.now()
	defer func() {
		e.cfg.logger.LogOperation(OperationEvent{
			Operation:   OpFetch,
			Identifiers: []string{d.Identifier()},
			Samples:     len(out),
			Duration:    e.cfg.now().Sub(started),
			Err:         err,
		})
	}()

	if d.IsZero() {
		return nil, &UndefinedTypeError{Identifier: d.Identifier(), Category: d.Category()}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	maxSamples, bounded := options.Limit.Max()
	if bounded && maxSamples == 0 {
		return []Measurement{}, nil
	}

	samples, err := e.execute(ctx, d, options)
	if err != nil {
		return nil, err
	}
	if bounded && uint(len(samples)) > maxSamples {
		samples = samples[:maxSamples]
	}

	quantities := make([]platform.QuantitySample, 0, len(samples))
	for _, sample := range samples {
		q, ok := sample.(platform.QuantitySample)
		if !ok {
			return nil, &UnsupportedSampleTypeError{Samples: samples}
		}
		quantities = append(quantities, q)
	}

	out = make([]Measurement, 0, len(quantities))
	var failures []*IncompatibleUnitError
	for _, sample := range quantities {
		quantity := sample.Quantity()
		if quantity == nil || !quantity.IsCompatible(unit.platform) {
			failures = append(failures, &IncompatibleUnitError{
				SampleID:  sample.UUID(),
				Type:      sample.SampleType().Identifier(),
				Unit:      unit.symbol,
				Dimension: dimension,
			})
			continue
		}
		out = append(out, Measurement{
			SampleID: sample.UUID(),
			Start:    sample.StartDate(),
			End:      sample.EndDate(),
			Value:    quantity.DoubleValue(unit.platform),
			Unit:     unit.symbol,
		})
	}
	if len(failures) > 0 {
		return out, &ConversionError{Failures: failures}
	}
	return out, nil
}

// execute issues one fresh platform query and waits for its single result.
func (e *QueryExecutor) execute(ctx context.Context, d Descriptor, options QueryOptions) ([]platform.Sample, error) {
	return await(ctx, func(resume func([]platform.Sample, error)) error {
		query := platform.NewSampleQuery(
			d.Type(),
			platform.PredicateForSamples(options.Start, options.End),
			options.Limit.platformLimit(),
			options.sortDescriptors(),
			func(_ *platform.SampleQuery, samples []platform.Sample, err error) {
				resume(samples, err)
			},
		)
		return e.store.Execute(query)
	})
}

func (e *QueryExecutor) logFailure(identifier string, err error) {
	e.cfg.logger.LogOperation(OperationEvent{
		Operation:   OpFetch,
		Identifiers: []string{identifier},
		Err:         err,
	})
}
