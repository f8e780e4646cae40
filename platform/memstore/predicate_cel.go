package memstore

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/goliatone/go-healthkit/platform"
)

// CELEngineOption configures the CEL engine.
type CELEngineOption func(*celEngine)

// CELWithProgramCache wires a ProgramCache into the CEL engine.
func CELWithProgramCache(cache ProgramCache) CELEngineOption {
	return func(e *celEngine) {
		e.cache = cache
	}
}

type celEngine struct {
	cache ProgramCache
}

// NewCELEngine constructs a PredicateEngine backed by cel-go. Every argument
// is declared dyn and `sample` as map(string, dyn).
func NewCELEngine(opts ...CELEngineOption) PredicateEngine {
	e := &celEngine{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEngine) Name() string { return "cel" }

func (e *celEngine) Compile(predicate platform.Predicate) (CompiledPredicate, error) {
	if predicate.Expression == "" {
		return nil, wrapPredicateError("cel", "", fmt.Errorf("expression must not be empty"))
	}
	key := cacheKey(e.Name(), predicate)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(celgo.Program); ok {
				return &celPredicate{program: program, expression: predicate.Expression}, nil
			}
		}
	}

	opts := []celgo.EnvOption{
		celgo.Variable("sample", celgo.MapType(celgo.StringType, celgo.DynType)),
	}
	for _, name := range argNames(predicate.Args) {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	program, err := compileCEL(predicate.Expression, opts...)
	if err != nil {
		return nil, wrapPredicateError("cel", predicate.Expression, err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return &celPredicate{program: program, expression: predicate.Expression}, nil
}

func compileCEL(expression string, opts ...celgo.EnvOption) (celgo.Program, error) {
	env, err := celgo.NewEnv(opts...)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(checked)
}

type celPredicate struct {
	program    celgo.Program
	expression string
}

func (p *celPredicate) Match(vars map[string]any) (bool, error) {
	out, _, err := p.program.Eval(vars)
	if err != nil {
		return false, wrapPredicateError("cel", p.expression, err)
	}
	return asBool("cel", p.expression, out.Value())
}
