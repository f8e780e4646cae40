package healthkit

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-healthkit/platform"
)

// Dimension names the physical quantity a unit family measures.
type Dimension string

// Family is implemented by the marker types that name a unit family. A
// family's members are fixed when the package initialises.
type Family interface {
	Dimension() Dimension
}

// Unit is one member of the unit family F. Units can only be minted by this
// package, which keeps every family closed.
type Unit[F Family] struct {
	symbol   string
	platform platform.Unit
}

// Symbol is the human readable unit symbol, e.g. "km" or "degC".
func (u Unit[F]) Symbol() string { return u.symbol }

// PlatformUnit is the platform's representation of the unit.
func (u Unit[F]) PlatformUnit() platform.Unit { return u.platform }

// Dimension reports the family dimension.
func (u Unit[F]) Dimension() Dimension {
	var family F
	return family.Dimension()
}

func (u Unit[F]) IsZero() bool { return u.symbol == "" }

func (u Unit[F]) String() string { return u.symbol }

// unitSpec is the family-independent view of a unit, used by runtime lookups.
type unitSpec struct {
	symbol   string
	platform platform.Unit
}

var (
	familyMu sync.RWMutex
	families = map[Dimension][]unitSpec{}
)

// defineUnit registers a member of F. It is only called from package-level
// variable declarations.
func defineUnit[F Family](symbol string, platformUnit platform.Unit) Unit[F] {
	var family F
	dimension := family.Dimension()
	familyMu.Lock()
	defer familyMu.Unlock()
	for _, existing := range families[dimension] {
		if existing.symbol == symbol {
			panic(fmt.Sprintf("healthkit: duplicate %s unit %q", dimension, symbol))
		}
	}
	families[dimension] = append(families[dimension], unitSpec{symbol: symbol, platform: platformUnit})
	return Unit[F]{symbol: symbol, platform: platformUnit}
}

// Units lists the members of F in declaration order.
func Units[F Family]() []Unit[F] {
	specs := familyUnits(dimensionOf[F]())
	out := make([]Unit[F], 0, len(specs))
	for _, spec := range specs {
		out = append(out, Unit[F]{symbol: spec.symbol, platform: spec.platform})
	}
	return out
}

// ParseUnit returns the member of F with the given symbol.
func ParseUnit[F Family](symbol string) (Unit[F], error) {
	spec, err := lookupUnit(dimensionOf[F](), symbol)
	if err != nil {
		return Unit[F]{}, err
	}
	return Unit[F]{symbol: spec.symbol, platform: spec.platform}, nil
}

// UnitSymbols lists the unit symbols registered for a dimension.
func UnitSymbols(dimension Dimension) []string {
	specs := familyUnits(dimension)
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.symbol)
	}
	return out
}

// Dimensions lists every registered family dimension.
func Dimensions() []Dimension {
	familyMu.RLock()
	defer familyMu.RUnlock()
	out := make([]Dimension, 0, len(families))
	for _, dimension := range allDimensions {
		if _, ok := families[dimension]; ok {
			out = append(out, dimension)
		}
	}
	return out
}

func dimensionOf[F Family]() Dimension {
	var family F
	return family.Dimension()
}

func familyUnits(dimension Dimension) []unitSpec {
	familyMu.RLock()
	defer familyMu.RUnlock()
	return append([]unitSpec(nil), families[dimension]...)
}

func lookupUnit(dimension Dimension, symbol string) (unitSpec, error) {
	for _, spec := range familyUnits(dimension) {
		if spec.symbol == symbol {
			return spec, nil
		}
	}
	return unitSpec{}, &UnknownUnitError{Symbol: symbol, Dimension: dimension}
}
