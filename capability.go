package healthkit

import (
	"sync"

	"github.com/goliatone/go-healthkit/platform"
)

// Biometric is anything that can be resolved into a Descriptor. Capabilities
// of every family and plain identifier references implement it, so mixed sets
// can be authorized together.
type Biometric interface {
	Identifier() string
	Category() Category
}

// Capability pairs a quantity identifier with the unit family F that its
// values are expressed in. Capabilities are declared once, as package-level
// values.
type Capability[F Family] struct {
	name       string
	identifier string
}

// NewCapability declares a quantity biometric measured in family F.
func NewCapability[F Family](name, identifier string) Capability[F] {
	return Capability[F]{name: name, identifier: identifier}
}

func (c Capability[F]) Name() string { return c.name }

func (c Capability[F]) Identifier() string { return c.identifier }

// Category is always CategoryQuantity.
func (c Capability[F]) Category() Category { return CategoryQuantity }

// Dimension reports the family of values this capability carries.
func (c Capability[F]) Dimension() Dimension { return dimensionOf[F]() }

// Units lists the units this capability can be fetched in.
func (c Capability[F]) Units() []Unit[F] { return Units[F]() }

// Resolve resolves the capability against catalog.
func (c Capability[F]) Resolve(catalog platform.Catalog) (Descriptor, error) {
	return Resolve(catalog, c.identifier, CategoryQuantity)
}

// Ref references a biometric by raw identifier and category, e.g. a category
// type such as sleep analysis that has no unit family.
type Ref struct {
	ID  string
	Cat Category
}

func (r Ref) Identifier() string { return r.ID }

func (r Ref) Category() Category { return r.Cat }

// Identifier and Category let a resolved Descriptor stand in as a Biometric.
var _ Biometric = Descriptor{}

type memoryDescriptorCache struct {
	mu    sync.RWMutex
	items map[string]Descriptor
}

// NewDescriptorCache returns a goroutine-safe in-memory DescriptorCache.
func NewDescriptorCache() DescriptorCache {
	return &memoryDescriptorCache{items: map[string]Descriptor{}}
}

func (c *memoryDescriptorCache) Get(key string) (Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.items[key]
	return d, ok
}

func (c *memoryDescriptorCache) Set(key string, descriptor Descriptor) {
	c.mu.Lock()
	c.items[key] = descriptor
	c.mu.Unlock()
}

// resolver resolves biometrics, consulting an optional cache.
type resolver struct {
	catalog platform.Catalog
	cache   DescriptorCache
}

func (r resolver) resolve(b Biometric) (Descriptor, error) {
	if d, ok := b.(Descriptor); ok && !d.IsZero() {
		return d, nil
	}
	key := descriptorKey(b.Identifier(), b.Category())
	if r.cache != nil {
		if d, ok := r.cache.Get(key); ok {
			return d, nil
		}
	}
	d, err := Resolve(r.catalog, b.Identifier(), b.Category())
	if err != nil {
		return Descriptor{}, err
	}
	if r.cache != nil {
		r.cache.Set(key, d)
	}
	return d, nil
}

// typeSet flattens biometrics into a platform type set.
func (r resolver) typeSet(biometrics []Biometric) (platform.TypeSet, error) {
	set := platform.NewTypeSet()
	for _, b := range biometrics {
		if b == nil {
			continue
		}
		d, err := r.resolve(b)
		if err != nil {
			return platform.TypeSet{}, err
		}
		set.Add(d.Type())
	}
	return set, nil
}
