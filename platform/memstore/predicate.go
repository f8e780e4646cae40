package memstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	"github.com/goliatone/go-healthkit/platform"
)

// ErrPredicateResult is returned when a predicate evaluates to a non-boolean.
var ErrPredicateResult = errors.New("memstore: predicate did not return a boolean")

// PredicateEngine compiles predicate expressions.
type PredicateEngine interface {
	Name() string
	Compile(predicate platform.Predicate) (CompiledPredicate, error)
}

// CompiledPredicate tests one sample. vars holds the predicate arguments and
// the `sample` binding.
type CompiledPredicate interface {
	Match(vars map[string]any) (bool, error)
}

// ProgramCache stores compiled programs keyed by engine, expression and
// argument names.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

type memoryProgramCache struct {
	mu       sync.RWMutex
	programs map[string]any
}

// NewProgramCache returns a goroutine-safe in-memory ProgramCache.
func NewProgramCache() ProgramCache {
	return &memoryProgramCache{programs: map[string]any{}}
}

func (c *memoryProgramCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	program, ok := c.programs[key]
	return program, ok
}

func (c *memoryProgramCache) Set(key string, value any) {
	c.mu.Lock()
	c.programs[key] = value
	c.mu.Unlock()
}

// PredicateError reports a predicate that failed to compile or run.
type PredicateError struct {
	Engine     string
	Expression string
	Err        error
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("memstore: %s predicate %q: %v", e.Engine, e.Expression, e.Err)
}

func (e *PredicateError) Unwrap() error { return e.Err }

func wrapPredicateError(engine, expression string, err error) error {
	if err == nil {
		return nil
	}
	var predicateErr *PredicateError
	if errors.As(err, &predicateErr) {
		return err
	}
	return &PredicateError{Engine: engine, Expression: expression, Err: err}
}

func cacheKey(engine string, predicate platform.Predicate) string {
	return engine + "|" + strings.Join(argNames(predicate.Args), ",") + "|" + predicate.Expression
}

func argNames(args map[string]any) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func asBool(engine, expression string, value any) (bool, error) {
	matched, ok := value.(bool)
	if !ok {
		return false, &PredicateError{Engine: engine, Expression: expression, Err: fmt.Errorf("%w: %T", ErrPredicateResult, value)}
	}
	return matched, nil
}

// ExprEngineOption configures the expr engine.
type ExprEngineOption func(*exprEngine)

// ExprWithProgramCache wires a ProgramCache into the expr engine.
func ExprWithProgramCache(cache ProgramCache) ExprEngineOption {
	return func(e *exprEngine) {
		e.cache = cache
	}
}

type exprEngine struct {
	cache ProgramCache
}

// NewExprEngine constructs a PredicateEngine backed by expr-lang/expr. It is
// the simulator's default engine.
func NewExprEngine(opts ...ExprEngineOption) PredicateEngine {
	e := &exprEngine{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *exprEngine) Name() string { return "expr" }

func (e *exprEngine) Compile(predicate platform.Predicate) (CompiledPredicate, error) {
	if predicate.Expression == "" {
		return nil, wrapPredicateError("expr", "", fmt.Errorf("expression must not be empty"))
	}
	key := cacheKey(e.Name(), predicate)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return &exprPredicate{program: program, expression: predicate.Expression}, nil
			}
		}
	}
	program, err := exprlang.Compile(predicate.Expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, wrapPredicateError("expr", predicate.Expression, err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return &exprPredicate{program: program, expression: predicate.Expression}, nil
}

type exprPredicate struct {
	program    *exprvm.Program
	expression string
}

func (p *exprPredicate) Match(vars map[string]any) (bool, error) {
	out, err := exprlang.Run(p.program, vars)
	if err != nil {
		return false, wrapPredicateError("expr", p.expression, err)
	}
	return asBool("expr", p.expression, out)
}

// ErrEngineUnavailable is returned by EngineByName for engines not compiled in.
var ErrEngineUnavailable = errors.New("memstore: predicate engine not available")

// EngineNames lists the engines EngineByName understands.
func EngineNames() []string {
	return []string{"expr", "cel", "js"}
}

// EngineByName builds the named engine sharing cache. The js engine requires
// the js_eval build tag.
func EngineByName(name string, cache ProgramCache) (PredicateEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "expr":
		return NewExprEngine(ExprWithProgramCache(cache)), nil
	case "cel":
		return NewCELEngine(CELWithProgramCache(cache)), nil
	case "js", "javascript":
		if !jsEngineAvailable() {
			return nil, fmt.Errorf("%w: %q (build with -tags js_eval)", ErrEngineUnavailable, name)
		}
		return NewJSEngine(JSWithProgramCache(cache)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrEngineUnavailable, name)
	}
}
