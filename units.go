package healthkit

const (
	DimensionLength                        Dimension = "length"
	DimensionMass                          Dimension = "mass"
	DimensionTime                          Dimension = "time"
	DimensionTemperature                   Dimension = "temperature"
	DimensionEnergy                        Dimension = "energy"
	DimensionFrequency                     Dimension = "frequency"
	DimensionPercent                       Dimension = "percent"
	DimensionPressure                      Dimension = "pressure"
	DimensionSoundLevel                    Dimension = "sound_level"
	DimensionPower                         Dimension = "power"
	DimensionVolume                        Dimension = "volume"
	DimensionAngle                         Dimension = "angle"
	DimensionElectricalConductance         Dimension = "electrical_conductance"
	DimensionElectricalPotentialDifference Dimension = "electrical_potential_difference"
	DimensionCardioFitness                 Dimension = "cardio_fitness"
	DimensionCount                         Dimension = "count"
	DimensionRate                          Dimension = "rate"
)

var allDimensions = []Dimension{
	DimensionLength,
	DimensionMass,
	DimensionTime,
	DimensionTemperature,
	DimensionEnergy,
	DimensionFrequency,
	DimensionPercent,
	DimensionPressure,
	DimensionSoundLevel,
	DimensionPower,
	DimensionVolume,
	DimensionAngle,
	DimensionElectricalConductance,
	DimensionElectricalPotentialDifference,
	DimensionCardioFitness,
	DimensionCount,
	DimensionRate,
}

type (
	Length                        struct{}
	Mass                          struct{}
	Time                          struct{}
	Temperature                   struct{}
	Energy                        struct{}
	Frequency                     struct{}
	Percent                       struct{}
	Pressure                      struct{}
	SoundLevel                    struct{}
	Power                         struct{}
	Volume                        struct{}
	Angle                         struct{}
	ElectricalConductance         struct{}
	ElectricalPotentialDifference struct{}
	CardioFitness                 struct{}
	Count                         struct{}
	Rate                          struct{}
)

func (Length) Dimension() Dimension                        { return DimensionLength }
func (Mass) Dimension() Dimension                          { return DimensionMass }
func (Time) Dimension() Dimension                          { return DimensionTime }
func (Temperature) Dimension() Dimension                   { return DimensionTemperature }
func (Energy) Dimension() Dimension                        { return DimensionEnergy }
func (Frequency) Dimension() Dimension                     { return DimensionFrequency }
func (Percent) Dimension() Dimension                       { return DimensionPercent }
func (Pressure) Dimension() Dimension                      { return DimensionPressure }
func (SoundLevel) Dimension() Dimension                    { return DimensionSoundLevel }
func (Power) Dimension() Dimension                         { return DimensionPower }
func (Volume) Dimension() Dimension                        { return DimensionVolume }
func (Angle) Dimension() Dimension                         { return DimensionAngle }
func (ElectricalConductance) Dimension() Dimension         { return DimensionElectricalConductance }
func (ElectricalPotentialDifference) Dimension() Dimension { return DimensionElectricalPotentialDifference }
func (CardioFitness) Dimension() Dimension                 { return DimensionCardioFitness }
func (Count) Dimension() Dimension                         { return DimensionCount }
func (Rate) Dimension() Dimension                          { return DimensionRate }

// Length units. Meters is the SI unit.
var (
	Meters      = defineUnit[Length]("m", "m")
	Centimeters = defineUnit[Length]("cm", "cm")
	Millimeters = defineUnit[Length]("mm", "mm")
	Kilometers  = defineUnit[Length]("km", "km")
	Inches      = defineUnit[Length]("in", "in")
	Feet        = defineUnit[Length]("ft", "ft")
	Yards       = defineUnit[Length]("yd", "yd")
	Miles       = defineUnit[Length]("mi", "mi")
)

// Mass units. Grams is the SI unit.
var (
	Grams      = defineUnit[Mass]("g", "g")
	Kilograms  = defineUnit[Mass]("kg", "kg")
	Milligrams = defineUnit[Mass]("mg", "mg")
	Ounces     = defineUnit[Mass]("oz", "oz")
	Pounds     = defineUnit[Mass]("lb", "lb")
	Stones     = defineUnit[Mass]("st", "st")
)

// Time units.
var (
	Seconds      = defineUnit[Time]("s", "s")
	Milliseconds = defineUnit[Time]("ms", "ms")
	Minutes      = defineUnit[Time]("min", "min")
	Hours        = defineUnit[Time]("hr", "hr")
	Days         = defineUnit[Time]("d", "d")
)

// Temperature units. Kelvin is the SI unit.
var (
	Kelvin     = defineUnit[Temperature]("K", "K")
	Celsius    = defineUnit[Temperature]("degC", "degC")
	Fahrenheit = defineUnit[Temperature]("degF", "degF")
)

// Energy units. The large calorie equals a kilocalorie (1 Cal = 4184 J); the
// small calorie is 4.184 J.
var (
	Joules        = defineUnit[Energy]("J", "J")
	Kilocalories  = defineUnit[Energy]("kcal", "kcal")
	LargeCalories = defineUnit[Energy]("Cal", "Cal")
	SmallCalories = defineUnit[Energy]("cal", "cal")
)

var Hertz = defineUnit[Frequency]("Hz", "Hz")

var PercentUnit = defineUnit[Percent]("%", "%")

// Pressure units. Pascals is the SI unit.
var (
	Pascals              = defineUnit[Pressure]("Pa", "Pa")
	MillimetersOfMercury = defineUnit[Pressure]("mmHg", "mmHg")
	CentimetersOfWater   = defineUnit[Pressure]("cmAq", "cmAq")
	Atmospheres          = defineUnit[Pressure]("atm", "atm")
	InchesOfMercury      = defineUnit[Pressure]("inHg", "inHg")
)

// DecibelsASPL is A-weighted sound pressure level. It is logarithmic, so the
// platform does not treat it as a pressure.
var DecibelsASPL = defineUnit[SoundLevel]("dBASPL", "dBASPL")

var Watts = defineUnit[Power]("W", "W")

// Volume units. Liters is the SI unit.
var (
	Liters              = defineUnit[Volume]("L", "L")
	Milliliters         = defineUnit[Volume]("mL", "mL")
	USFluidOunces       = defineUnit[Volume]("fl_oz_us", "fl_oz_us")
	ImperialFluidOunces = defineUnit[Volume]("fl_oz_imp", "fl_oz_imp")
	USPints             = defineUnit[Volume]("pt_us", "pt_us")
	ImperialPints       = defineUnit[Volume]("pt_imp", "pt_imp")
	USCups              = defineUnit[Volume]("cup_us", "cup_us")
	ImperialCups        = defineUnit[Volume]("cup_imp", "cup_imp")
)

var (
	Radians = defineUnit[Angle]("rad", "rad")
	Degrees = defineUnit[Angle]("deg", "deg")
)

var Siemens = defineUnit[ElectricalConductance]("S", "S")

var Volts = defineUnit[ElectricalPotentialDifference]("V", "V")

// VO2 is oxygen uptake in millilitres per kilogram per minute.
var VO2 = defineUnit[CardioFitness]("mL/min·kg", "ml/kg*min")

var CountUnit = defineUnit[Count]("count", "count")

var (
	CountPerMinute = defineUnit[Rate]("count/min", "count/min")
	CountPerSecond = defineUnit[Rate]("count/s", "count/s")
)
