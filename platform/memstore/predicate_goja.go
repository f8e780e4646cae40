//go:build js_eval

package memstore

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/goliatone/go-healthkit/platform"
)

type jsEngine struct {
	cache ProgramCache
}

// NewJSEngine constructs a PredicateEngine backed by goja.
func NewJSEngine(opts ...JSEngineOption) PredicateEngine {
	cfg := applyJSEngineOptions(opts)
	return &jsEngine{cache: cfg.cache}
}

func (e *jsEngine) Name() string { return "js" }

func (e *jsEngine) Compile(predicate platform.Predicate) (CompiledPredicate, error) {
	if predicate.Expression == "" {
		return nil, wrapPredicateError("js", "", fmt.Errorf("expression must not be empty"))
	}
	key := cacheKey(e.Name(), predicate)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			if program, ok := cached.(*goja.Program); ok {
				return &jsPredicate{program: program, expression: predicate.Expression}, nil
			}
		}
	}
	program, err := goja.Compile("", wrapExpression(predicate.Expression), false)
	if err != nil {
		return nil, wrapPredicateError("js", predicate.Expression, err)
	}
	if e.cache != nil {
		e.cache.Set(key, program)
	}
	return &jsPredicate{program: program, expression: predicate.Expression}, nil
}

func wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsPredicate struct {
	program    *goja.Program
	expression string
}

func (p *jsPredicate) Match(vars map[string]any) (bool, error) {
	vm := goja.New()
	for key, value := range vars {
		if err := vm.Set(key, value); err != nil {
			return false, wrapPredicateError("js", p.expression, err)
		}
	}
	value, err := vm.RunProgram(p.program)
	if err != nil {
		return false, wrapPredicateError("js", p.expression, err)
	}
	return asBool("js", p.expression, value.Export())
}

func jsEngineAvailable() bool {
	return true
}
