package healthkit_test

import (
	"errors"
	"testing"

	healthkit "github.com/goliatone/go-healthkit"
	"github.com/goliatone/go-healthkit/platform"
	"github.com/goliatone/go-healthkit/platform/memstore"
)

func TestResolveEveryCategory(t *testing.T) {
	store := newStore(t)
	cases := []struct {
		category   healthkit.Category
		identifier string
		kind       platform.Kind
	}{
		{healthkit.CategoryQuantity, "HKQuantityTypeIdentifierStepCount", platform.KindQuantity},
		{healthkit.CategoryCategory, "HKCategoryTypeIdentifierSleepAnalysis", platform.KindCategory},
		{healthkit.CategoryCharacteristic, "HKCharacteristicTypeIdentifierBloodType", platform.KindCharacteristic},
		{healthkit.CategoryCorrelation, "HKCorrelationTypeIdentifierBloodPressure", platform.KindCorrelation},
		{healthkit.CategoryDocument, "HKDocumentTypeIdentifierCDA", platform.KindDocument},
	}
	for _, tc := range cases {
		t.Run(tc.category.String(), func(t *testing.T) {
			d, err := healthkit.Resolve(store, tc.identifier, tc.category)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if d.Identifier() != tc.identifier || d.Category() != tc.category || d.Type().Kind() != tc.kind {
				t.Fatalf("unexpected descriptor %+v", d)
			}

			_, err = healthkit.Resolve(store, "HKNope", tc.category)
			var undefined *healthkit.UndefinedTypeError
			if !errors.As(err, &undefined) || undefined.Category != tc.category {
				t.Fatalf("expected UndefinedTypeError, got %v", err)
			}
		})
	}
}

func TestResolveWorkoutUsesPlatformIdentifier(t *testing.T) {
	store := newStore(t)
	d, err := healthkit.Resolve(store, "ignored", healthkit.CategoryWorkout)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Identifier() != memstore.WorkoutTypeIdentifier {
		t.Fatalf("expected %s, got %s", memstore.WorkoutTypeIdentifier, d.Identifier())
	}
	w, err := healthkit.ResolveWorkout(store)
	if err != nil || w.Identifier() != d.Identifier() {
		t.Fatalf("ResolveWorkout disagrees: %v, %v", w, err)
	}
}

func TestResolveUnknownCategory(t *testing.T) {
	_, err := healthkit.Resolve(newStore(t), "x", healthkit.Category(42))
	if !errors.Is(err, healthkit.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestResolveHelpers(t *testing.T) {
	store := newStore(t)
	helpers := map[string]func(platform.Catalog, string) (healthkit.Descriptor, error){
		"HKQuantityTypeIdentifierHeartRate":           healthkit.ResolveQuantity,
		"HKCategoryTypeIdentifierMindfulSession":      healthkit.ResolveCategory,
		"HKCharacteristicTypeIdentifierBiologicalSex": healthkit.ResolveCharacteristic,
		"HKCorrelationTypeIdentifierFood":             healthkit.ResolveCorrelation,
		"HKDocumentTypeIdentifierCDA":                 healthkit.ResolveDocument,
	}
	for identifier, resolve := range helpers {
		if _, err := resolve(store, identifier); err != nil {
			t.Fatalf("%s: %v", identifier, err)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	store := newStore(t)
	a, err := healthkit.HeartRate.Resolve(store)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b, err := healthkit.HeartRate.Resolve(store)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if platform.TypeKey(a.Type()) != platform.TypeKey(b.Type()) || a.Identifier() != b.Identifier() {
		t.Fatalf("expected equivalent descriptors")
	}
	set := platform.NewTypeSet(a.Type(), b.Type())
	if set.Len() != 1 {
		t.Fatalf("expected equivalent handles to collapse, got %d", set.Len())
	}
}

func TestEveryCapabilityResolvesAgainstDefaultCatalog(t *testing.T) {
	store := newStore(t)
	for _, c := range healthkit.Capabilities() {
		if _, err := healthkit.Resolve(store, c.Identifier(), c.Category()); err != nil {
			t.Fatalf("%s: %v", c.Name(), err)
		}
	}
}
