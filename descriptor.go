package healthkit

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-healthkit/platform"
)

// Category selects the platform catalog an identifier belongs to. The
// integer values are stable.
type Category int

const (
	CategoryQuantity Category = iota
	CategoryCategory
	CategoryCharacteristic
	CategoryCorrelation
	CategoryDocument
	CategoryWorkout
)

func (c Category) String() string {
	switch c {
	case CategoryQuantity:
		return "quantity"
	case CategoryCategory:
		return "category"
	case CategoryCharacteristic:
		return "characteristic"
	case CategoryCorrelation:
		return "correlation"
	case CategoryDocument:
		return "document"
	case CategoryWorkout:
		return "workout"
	default:
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseCategory maps a category name back to its value.
func ParseCategory(name string) (Category, error) {
	for c := CategoryQuantity; c <= CategoryWorkout; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Descriptor is a resolved, validated handle to one platform type. The zero
// value is not a valid descriptor; use Resolve.
type Descriptor struct {
	identifier string
	category   Category
	objectType platform.ObjectType
}

func (d Descriptor) Identifier() string { return d.identifier }

func (d Descriptor) Category() Category { return d.category }

// Type is the platform handle the descriptor resolved to.
func (d Descriptor) Type() platform.ObjectType { return d.objectType }

func (d Descriptor) IsZero() bool { return d.objectType == nil }

// Resolve looks identifier up in the platform catalog that matches category.
// Workout descriptors ignore identifier and take the platform's workout type
// identifier instead.
func Resolve(catalog platform.Catalog, identifier string, category Category) (Descriptor, error) {
	var (
		objectType platform.ObjectType
		ok         bool
	)
	switch category {
	case CategoryQuantity:
		objectType, ok = catalog.QuantityType(identifier)
	case CategoryCategory:
		objectType, ok = catalog.CategoryType(identifier)
	case CategoryCharacteristic:
		objectType, ok = catalog.CharacteristicType(identifier)
	case CategoryCorrelation:
		objectType, ok = catalog.CorrelationType(identifier)
	case CategoryDocument:
		objectType, ok = catalog.DocumentType(identifier)
	case CategoryWorkout:
		objectType = catalog.WorkoutType()
		ok = objectType != nil
		if ok {
			identifier = objectType.Identifier()
		}
	default:
		return Descriptor{}, &UnknownCategoryError{Category: category}
	}
	if !ok || objectType == nil {
		return Descriptor{}, &UndefinedTypeError{Identifier: identifier, Category: category}
	}
	return Descriptor{
		identifier: identifier,
		category:   category,
		objectType: objectType,
	}, nil
}

func ResolveQuantity(catalog platform.Catalog, identifier string) (Descriptor, error) {
	return Resolve(catalog, identifier, CategoryQuantity)
}

func ResolveCategory(catalog platform.Catalog, identifier string) (Descriptor, error) {
	return Resolve(catalog, identifier, CategoryCategory)
}

func ResolveCharacteristic(catalog platform.Catalog, identifier string) (Descriptor, error) {
	return Resolve(catalog, identifier, CategoryCharacteristic)
}

func ResolveCorrelation(catalog platform.Catalog, identifier string) (Descriptor, error) {
	return Resolve(catalog, identifier, CategoryCorrelation)
}

func ResolveDocument(catalog platform.Catalog, identifier string) (Descriptor, error) {
	return Resolve(catalog, identifier, CategoryDocument)
}

// ResolveWorkout resolves the platform's single workout type.
func ResolveWorkout(catalog platform.Catalog) (Descriptor, error) {
	return Resolve(catalog, "", CategoryWorkout)
}

// DescriptorCache stores resolved descriptors keyed by category and
// identifier.
type DescriptorCache interface {
	Get(key string) (Descriptor, bool)
	Set(key string, descriptor Descriptor)
}

func descriptorKey(identifier string, category Category) string {
	return category.String() + "/" + identifier
}
