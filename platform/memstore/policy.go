package memstore

import (
	"fmt"
	"strings"

	celgo "github.com/google/cel-go/cel"
	"github.com/goliatone/go-healthkit/platform"
)

// Access is the direction of an authorization request.
type Access string

const (
	AccessRead  Access = "read"
	AccessShare Access = "share"
)

// AccessRequest is one type in an authorization prompt.
type AccessRequest struct {
	Identifier string
	Kind       platform.Kind
	Access     Access
}

// AuthorizationPolicy decides what the simulated user grants in a prompt.
type AuthorizationPolicy interface {
	Grant(request AccessRequest) (bool, error)
}

// PolicyFunc adapts a function to AuthorizationPolicy.
type PolicyFunc func(AccessRequest) (bool, error)

// Grant implements AuthorizationPolicy.
func (f PolicyFunc) Grant(request AccessRequest) (bool, error) {
	if f == nil {
		return false, nil
	}
	return f(request)
}

// AllowAll grants every request.
var AllowAll = PolicyFunc(func(AccessRequest) (bool, error) { return true, nil })

// DenyAll denies every request.
var DenyAll = PolicyFunc(func(AccessRequest) (bool, error) { return false, nil })

// CELPolicy grants requests for which a CEL expression holds. The expression
// sees `identifier`, `kind` and `access` as strings, e.g.
//
//	access == "read" || identifier.endsWith("BodyMass")
type CELPolicy struct {
	expression string
	program    celgo.Program
}

// NewCELPolicy compiles expression.
func NewCELPolicy(expression string) (*CELPolicy, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("memstore: policy expression must not be empty")
	}
	program, err := compileCEL(expression,
		celgo.Variable("identifier", celgo.StringType),
		celgo.Variable("kind", celgo.StringType),
		celgo.Variable("access", celgo.StringType),
	)
	if err != nil {
		return nil, wrapPredicateError("cel", expression, err)
	}
	return &CELPolicy{expression: expression, program: program}, nil
}

// Expression returns the policy source.
func (p *CELPolicy) Expression() string { return p.expression }

// Grant implements AuthorizationPolicy.
func (p *CELPolicy) Grant(request AccessRequest) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{
		"identifier": request.Identifier,
		"kind":       request.Kind.String(),
		"access":     string(request.Access),
	})
	if err != nil {
		return false, wrapPredicateError("cel", p.expression, err)
	}
	return asBool("cel", p.expression, out.Value())
}
