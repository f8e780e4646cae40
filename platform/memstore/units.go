package memstore

import (
	"errors"
	"fmt"
	"math"

	"github.com/goliatone/go-healthkit/platform"
)

// ErrUnknownUnit is returned when a unit string is not in the unit table.
var ErrUnknownUnit = errors.New("memstore: unknown unit")

// unitMath converts a unit to its dimension's base unit: base = v*factor + offset.
type unitMath struct {
	dimension string
	factor    float64
	offset    float64
}

const (
	fahrenheitFactor = 5.0 / 9.0
	fahrenheitOffset = 273.15 - 32*fahrenheitFactor
)

var unitTable = map[platform.Unit]unitMath{
	"m":  {dimension: "length", factor: 1},
	"cm": {dimension: "length", factor: 0.01},
	"mm": {dimension: "length", factor: 0.001},
	"km": {dimension: "length", factor: 1000},
	"in": {dimension: "length", factor: 0.0254},
	"ft": {dimension: "length", factor: 0.3048},
	"yd": {dimension: "length", factor: 0.9144},
	"mi": {dimension: "length", factor: 1609.344},

	"g":  {dimension: "mass", factor: 1},
	"kg": {dimension: "mass", factor: 1000},
	"mg": {dimension: "mass", factor: 0.001},
	"oz": {dimension: "mass", factor: 28.349523125},
	"lb": {dimension: "mass", factor: 453.59237},
	"st": {dimension: "mass", factor: 6350.29318},

	"s":   {dimension: "time", factor: 1},
	"ms":  {dimension: "time", factor: 0.001},
	"min": {dimension: "time", factor: 60},
	"hr":  {dimension: "time", factor: 3600},
	"d":   {dimension: "time", factor: 86400},

	"K":    {dimension: "temperature", factor: 1},
	"degC": {dimension: "temperature", factor: 1, offset: 273.15},
	"degF": {dimension: "temperature", factor: fahrenheitFactor, offset: fahrenheitOffset},

	"J":    {dimension: "energy", factor: 1},
	"kcal": {dimension: "energy", factor: 4184},
	"Cal":  {dimension: "energy", factor: 4184},
	"cal":  {dimension: "energy", factor: 4.184},

	"Hz": {dimension: "frequency", factor: 1},
	"%":  {dimension: "percent", factor: 1},

	"Pa":   {dimension: "pressure", factor: 1},
	"mmHg": {dimension: "pressure", factor: 133.322387415},
	"cmAq": {dimension: "pressure", factor: 98.0665},
	"atm":  {dimension: "pressure", factor: 101325},
	"inHg": {dimension: "pressure", factor: 3386.389},

	"dBASPL": {dimension: "sound_level", factor: 1},
	"W":      {dimension: "power", factor: 1},

	"L":         {dimension: "volume", factor: 1},
	"mL":        {dimension: "volume", factor: 0.001},
	"fl_oz_us":  {dimension: "volume", factor: 0.0295735295625},
	"fl_oz_imp": {dimension: "volume", factor: 0.0284130625},
	"pt_us":     {dimension: "volume", factor: 0.473176473},
	"pt_imp":    {dimension: "volume", factor: 0.56826125},
	"cup_us":    {dimension: "volume", factor: 0.2365882365},
	"cup_imp":   {dimension: "volume", factor: 0.284130625},

	"rad": {dimension: "angle", factor: 1},
	"deg": {dimension: "angle", factor: math.Pi / 180},

	"S": {dimension: "electrical_conductance", factor: 1},
	"V": {dimension: "electrical_potential_difference", factor: 1},

	"ml/kg*min": {dimension: "cardio_fitness", factor: 1},

	"count":     {dimension: "count", factor: 1},
	"count/s":   {dimension: "rate", factor: 1},
	"count/min": {dimension: "rate", factor: 1.0 / 60},
}

// KnownUnit reports whether unit is in the simulator's unit table.
func KnownUnit(unit platform.Unit) bool {
	_, ok := unitTable[unit]
	return ok
}

// Compatible reports whether a and b measure the same dimension.
func Compatible(a, b platform.Unit) bool {
	ma, ok := unitTable[a]
	if !ok {
		return false
	}
	mb, ok := unitTable[b]
	return ok && ma.dimension == mb.dimension
}

// Quantity is a value in a platform unit.
type Quantity struct {
	value float64
	unit  platform.Unit
}

// NewQuantity builds a quantity, rejecting units missing from the table.
func NewQuantity(value float64, unit platform.Unit) (Quantity, error) {
	if !KnownUnit(unit) {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return Quantity{value: value, unit: unit}, nil
}

// Unit returns the unit the quantity was recorded in.
func (q Quantity) Unit() platform.Unit { return q.unit }

// IsCompatible implements platform.Quantity.
func (q Quantity) IsCompatible(unit platform.Unit) bool {
	return Compatible(q.unit, unit)
}

// DoubleValue implements platform.Quantity. It returns NaN for an
// incompatible unit.
func (q Quantity) DoubleValue(unit platform.Unit) float64 {
	if !q.IsCompatible(unit) {
		return math.NaN()
	}
	from := unitTable[q.unit]
	to := unitTable[unit]
	base := q.value*from.factor + from.offset
	return (base - to.offset) / to.factor
}

func (q Quantity) baseValue() float64 {
	m := unitTable[q.unit]
	return q.value*m.factor + m.offset
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.value, q.unit)
}
