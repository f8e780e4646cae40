package healthkit

import (
	"sort"
	"sync"
)

// Measurable is the family-erased view of a Capability.
type Measurable interface {
	Biometric
	Name() string
	Dimension() Dimension
}

var (
	capabilityMu sync.RWMutex
	capabilities = map[string]Measurable{}
)

func declare[F Family](name, identifier string) Capability[F] {
	c := NewCapability[F](name, identifier)
	capabilityMu.Lock()
	capabilities[name] = c
	capabilityMu.Unlock()
	return c
}

// LookupCapability finds a declared capability by name, e.g. "bodyTemperature".
func LookupCapability(name string) (Measurable, bool) {
	capabilityMu.RLock()
	defer capabilityMu.RUnlock()
	c, ok := capabilities[name]
	return c, ok
}

// Capabilities lists the declared capabilities sorted by name.
func Capabilities() []Measurable {
	capabilityMu.RLock()
	defer capabilityMu.RUnlock()
	out := make([]Measurable, 0, len(capabilities))
	for _, c := range capabilities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Length biometrics. Distances are cumulative; stride length is discrete.
var (
	DistanceCycling            = declare[Length]("distanceCycling", "HKQuantityTypeIdentifierDistanceCycling")
	DistanceSwimming           = declare[Length]("distanceSwimming", "HKQuantityTypeIdentifierDistanceSwimming")
	DistanceWalkingRunning     = declare[Length]("distanceWalkingRunning", "HKQuantityTypeIdentifierDistanceWalkingRunning")
	DistanceWheelchair         = declare[Length]("distanceWheelchair", "HKQuantityTypeIdentifierDistanceWheelchair")
	DistanceDownhillSnowSports = declare[Length]("distanceDownhillSnowSports", "HKQuantityTypeIdentifierDistanceDownhillSnowSports")
	RunningStrideLength        = declare[Length]("runningStrideLength", "HKQuantityTypeIdentifierRunningStrideLength")
	Height                     = declare[Length]("height", "HKQuantityTypeIdentifierHeight")
	WaistCircumference         = declare[Length]("waistCircumference", "HKQuantityTypeIdentifierWaistCircumference")
)

var (
	BodyTemperature               = declare[Temperature]("bodyTemperature", "HKQuantityTypeIdentifierBodyTemperature")
	BasalBodyTemperature          = declare[Temperature]("basalBodyTemperature", "HKQuantityTypeIdentifierBasalBodyTemperature")
	AppleSleepingWristTemperature = declare[Temperature]("appleSleepingWristTemperature", "HKQuantityTypeIdentifierAppleSleepingWristTemperature")
	WaterTemperature              = declare[Temperature]("waterTemperature", "HKQuantityTypeIdentifierWaterTemperature")
)

var (
	ActiveEnergyBurned    = declare[Energy]("activeEnergyBurned", "HKQuantityTypeIdentifierActiveEnergyBurned")
	BasalEnergyBurned     = declare[Energy]("basalEnergyBurned", "HKQuantityTypeIdentifierBasalEnergyBurned")
	DietaryEnergyConsumed = declare[Energy]("dietaryEnergyConsumed", "HKQuantityTypeIdentifierDietaryEnergyConsumed")
)

var (
	BodyMass             = declare[Mass]("bodyMass", "HKQuantityTypeIdentifierBodyMass")
	LeanBodyMass         = declare[Mass]("leanBodyMass", "HKQuantityTypeIdentifierLeanBodyMass")
	DietaryProtein       = declare[Mass]("dietaryProtein", "HKQuantityTypeIdentifierDietaryProtein")
	DietaryCarbohydrates = declare[Mass]("dietaryCarbohydrates", "HKQuantityTypeIdentifierDietaryCarbohydrates")
	DietaryFatTotal      = declare[Mass]("dietaryFatTotal", "HKQuantityTypeIdentifierDietaryFatTotal")
)

var (
	AppleExerciseTime = declare[Time]("appleExerciseTime", "HKQuantityTypeIdentifierAppleExerciseTime")
	AppleStandTime    = declare[Time]("appleStandTime", "HKQuantityTypeIdentifierAppleStandTime")
	AppleMoveTime     = declare[Time]("appleMoveTime", "HKQuantityTypeIdentifierAppleMoveTime")
)

var (
	BodyFatPercentage          = declare[Percent]("bodyFatPercentage", "HKQuantityTypeIdentifierBodyFatPercentage")
	OxygenSaturation           = declare[Percent]("oxygenSaturation", "HKQuantityTypeIdentifierOxygenSaturation")
	WalkingAsymmetryPercentage = declare[Percent]("walkingAsymmetryPercentage", "HKQuantityTypeIdentifierWalkingAsymmetryPercentage")
)

var (
	BloodPressureSystolic  = declare[Pressure]("bloodPressureSystolic", "HKQuantityTypeIdentifierBloodPressureSystolic")
	BloodPressureDiastolic = declare[Pressure]("bloodPressureDiastolic", "HKQuantityTypeIdentifierBloodPressureDiastolic")
)

var (
	EnvironmentalAudioExposure = declare[SoundLevel]("environmentalAudioExposure", "HKQuantityTypeIdentifierEnvironmentalAudioExposure")
	HeadphoneAudioExposure     = declare[SoundLevel]("headphoneAudioExposure", "HKQuantityTypeIdentifierHeadphoneAudioExposure")
)

var (
	RunningPower = declare[Power]("runningPower", "HKQuantityTypeIdentifierRunningPower")
	CyclingPower = declare[Power]("cyclingPower", "HKQuantityTypeIdentifierCyclingPower")
)

var (
	DietaryWater        = declare[Volume]("dietaryWater", "HKQuantityTypeIdentifierDietaryWater")
	ForcedVitalCapacity = declare[Volume]("forcedVitalCapacity", "HKQuantityTypeIdentifierForcedVitalCapacity")
)

var ElectrodermalActivity = declare[ElectricalConductance]("electrodermalActivity", "HKQuantityTypeIdentifierElectrodermalActivity")

// VO2Max is the maximum rate of oxygen consumption during incremental
// exercise, a measure of cardiorespiratory fitness.
var VO2Max = declare[CardioFitness]("vo2Max", "HKQuantityTypeIdentifierVO2Max")

var (
	StepCount           = declare[Count]("stepCount", "HKQuantityTypeIdentifierStepCount")
	FlightsClimbed      = declare[Count]("flightsClimbed", "HKQuantityTypeIdentifierFlightsClimbed")
	SwimmingStrokeCount = declare[Count]("swimmingStrokeCount", "HKQuantityTypeIdentifierSwimmingStrokeCount")
)

var (
	HeartRate               = declare[Rate]("heartRate", "HKQuantityTypeIdentifierHeartRate")
	RestingHeartRate        = declare[Rate]("restingHeartRate", "HKQuantityTypeIdentifierRestingHeartRate")
	WalkingHeartRateAverage = declare[Rate]("walkingHeartRateAverage", "HKQuantityTypeIdentifierWalkingHeartRateAverage")
	RespiratoryRate         = declare[Rate]("respiratoryRate", "HKQuantityTypeIdentifierRespiratoryRate")
)
