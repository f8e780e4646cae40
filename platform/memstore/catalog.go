package memstore

import "github.com/goliatone/go-healthkit/platform"

// WorkoutTypeIdentifier is the identifier of the single workout type.
const WorkoutTypeIdentifier = "HKWorkoutTypeIdentifier"

// defaultQuantityTypes maps quantity identifiers to their canonical units.
var defaultQuantityTypes = map[string]platform.Unit{
	"HKQuantityTypeIdentifierDistanceCycling":               "m",
	"HKQuantityTypeIdentifierDistanceSwimming":              "m",
	"HKQuantityTypeIdentifierDistanceWalkingRunning":        "m",
	"HKQuantityTypeIdentifierDistanceWheelchair":            "m",
	"HKQuantityTypeIdentifierDistanceDownhillSnowSports":    "m",
	"HKQuantityTypeIdentifierRunningStrideLength":           "m",
	"HKQuantityTypeIdentifierHeight":                        "cm",
	"HKQuantityTypeIdentifierWaistCircumference":            "cm",
	"HKQuantityTypeIdentifierBodyTemperature":               "degC",
	"HKQuantityTypeIdentifierBasalBodyTemperature":          "degC",
	"HKQuantityTypeIdentifierAppleSleepingWristTemperature": "degC",
	"HKQuantityTypeIdentifierWaterTemperature":              "degC",
	"HKQuantityTypeIdentifierActiveEnergyBurned":            "kcal",
	"HKQuantityTypeIdentifierBasalEnergyBurned":             "kcal",
	"HKQuantityTypeIdentifierDietaryEnergyConsumed":         "kcal",
	"HKQuantityTypeIdentifierBodyMass":                      "kg",
	"HKQuantityTypeIdentifierLeanBodyMass":                  "kg",
	"HKQuantityTypeIdentifierDietaryProtein":                "g",
	"HKQuantityTypeIdentifierDietaryCarbohydrates":          "g",
	"HKQuantityTypeIdentifierDietaryFatTotal":               "g",
	"HKQuantityTypeIdentifierAppleExerciseTime":             "min",
	"HKQuantityTypeIdentifierAppleStandTime":                "min",
	"HKQuantityTypeIdentifierAppleMoveTime":                 "min",
	"HKQuantityTypeIdentifierBodyFatPercentage":             "%",
	"HKQuantityTypeIdentifierOxygenSaturation":              "%",
	"HKQuantityTypeIdentifierWalkingAsymmetryPercentage":    "%",
	"HKQuantityTypeIdentifierBloodPressureSystolic":         "mmHg",
	"HKQuantityTypeIdentifierBloodPressureDiastolic":        "mmHg",
	"HKQuantityTypeIdentifierEnvironmentalAudioExposure":    "dBASPL",
	"HKQuantityTypeIdentifierHeadphoneAudioExposure":        "dBASPL",
	"HKQuantityTypeIdentifierRunningPower":                  "W",
	"HKQuantityTypeIdentifierCyclingPower":                  "W",
	"HKQuantityTypeIdentifierDietaryWater":                  "mL",
	"HKQuantityTypeIdentifierForcedVitalCapacity":           "mL",
	"HKQuantityTypeIdentifierElectrodermalActivity":         "S",
	"HKQuantityTypeIdentifierVO2Max":                        "ml/kg*min",
	"HKQuantityTypeIdentifierStepCount":                     "count",
	"HKQuantityTypeIdentifierFlightsClimbed":                "count",
	"HKQuantityTypeIdentifierSwimmingStrokeCount":           "count",
	"HKQuantityTypeIdentifierHeartRate":                     "count/min",
	"HKQuantityTypeIdentifierRestingHeartRate":              "count/min",
	"HKQuantityTypeIdentifierWalkingHeartRateAverage":       "count/min",
	"HKQuantityTypeIdentifierRespiratoryRate":               "count/min",
}

var defaultTypes = map[platform.Kind][]string{
	platform.KindCategory: {
		"HKCategoryTypeIdentifierSleepAnalysis",
		"HKCategoryTypeIdentifierMindfulSession",
		"HKCategoryTypeIdentifierAppleStandHour",
		"HKCategoryTypeIdentifierHighHeartRateEvent",
	},
	platform.KindCharacteristic: {
		"HKCharacteristicTypeIdentifierBiologicalSex",
		"HKCharacteristicTypeIdentifierBloodType",
		"HKCharacteristicTypeIdentifierDateOfBirth",
	},
	platform.KindCorrelation: {
		"HKCorrelationTypeIdentifierBloodPressure",
		"HKCorrelationTypeIdentifierFood",
	},
	platform.KindDocument: {
		"HKDocumentTypeIdentifierCDA",
	},
}

// WithDefaultCatalog registers the built-in quantity, category,
// characteristic, correlation and document types.
func WithDefaultCatalog() Option {
	return func(s *Store) {
		for identifier, unit := range defaultQuantityTypes {
			s.registerLocked(platform.KindQuantity, identifier, unit)
		}
		for kind, identifiers := range defaultTypes {
			for _, identifier := range identifiers {
				s.registerLocked(kind, identifier, "")
			}
		}
	}
}
