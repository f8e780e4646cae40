package memstore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goliatone/go-healthkit/platform"
	"gopkg.in/yaml.v3"
)

// ErrFixtureFormat is returned for fixture files that are neither TOML nor YAML.
var ErrFixtureFormat = errors.New("memstore: unsupported fixture format")

// Fixture seeds a Store. It decodes from TOML or YAML.
type Fixture struct {
	Available      *bool           `toml:"available" yaml:"available"`
	DefaultCatalog bool            `toml:"default_catalog" yaml:"default_catalog"`
	Engine         string          `toml:"engine" yaml:"engine"`
	Policy         string          `toml:"policy" yaml:"policy"`
	Types          []FixtureType   `toml:"types" yaml:"types"`
	Samples        []FixtureSample `toml:"samples" yaml:"samples"`
	Background     []FixtureToggle `toml:"background" yaml:"background"`
}

// FixtureType registers one catalog type. Unit applies to quantity types.
type FixtureType struct {
	Identifier string `toml:"identifier" yaml:"identifier"`
	Kind       string `toml:"kind" yaml:"kind"`
	Unit       string `toml:"unit" yaml:"unit"`
}

// FixtureSample is one quantity or category sample. End defaults to Start.
type FixtureSample struct {
	Identifier string    `toml:"identifier" yaml:"identifier"`
	Kind       string    `toml:"kind" yaml:"kind"`
	Start      time.Time `toml:"start" yaml:"start"`
	End        time.Time `toml:"end" yaml:"end"`
	Value      float64   `toml:"value" yaml:"value"`
	Unit       string    `toml:"unit" yaml:"unit"`
}

// FixtureToggle pre-enables background delivery for a quantity type.
type FixtureToggle struct {
	Identifier string `toml:"identifier" yaml:"identifier"`
	Frequency  string `toml:"frequency" yaml:"frequency"`
}

// LoadFixture reads a fixture, choosing the decoder by file extension.
func LoadFixture(path string) (Fixture, error) {
	if path == "" {
		return Fixture{}, fmt.Errorf("memstore: fixture path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("memstore: read fixture: %w", err)
	}
	return ParseFixture(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// ParseFixture decodes data in format ("toml", "yaml" or "yml").
func ParseFixture(data []byte, format string) (Fixture, error) {
	var fixture Fixture
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&fixture); err != nil {
			return Fixture{}, fmt.Errorf("memstore: decode toml fixture: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &fixture); err != nil {
			return Fixture{}, fmt.Errorf("memstore: decode yaml fixture: %w", err)
		}
	default:
		return Fixture{}, fmt.Errorf("%w: %q", ErrFixtureFormat, format)
	}
	return fixture, nil
}

// Options turns the fixture's store-level settings into Store options.
func (f Fixture) Options() ([]Option, error) {
	var opts []Option
	if f.DefaultCatalog {
		opts = append(opts, WithDefaultCatalog())
	}
	if f.Available != nil {
		opts = append(opts, WithAvailability(*f.Available))
	}
	if f.Engine != "" {
		engine, err := EngineByName(f.Engine, NewProgramCache())
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithPredicateEngine(engine))
	}
	if f.Policy != "" {
		policy, err := NewCELPolicy(f.Policy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAuthorizationPolicy(policy))
	}
	return opts, nil
}

// NewStore builds a store from the fixture, with extra options applied after
// the fixture's own.
func (f Fixture) NewStore(extra ...Option) (*Store, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	store := NewStore(append(opts, extra...)...)
	if err := f.Seed(store); err != nil {
		return nil, err
	}
	return store, nil
}

// Seed registers the fixture's types and samples into store.
func (f Fixture) Seed(store *Store) error {
	for i, t := range f.Types {
		kind, err := fixtureKind(t.Kind)
		if err != nil {
			return fmt.Errorf("memstore: types[%d]: %w", i, err)
		}
		if kind == platform.KindQuantity {
			err = store.RegisterQuantityType(t.Identifier, platform.Unit(t.Unit))
		} else {
			err = store.RegisterType(kind, t.Identifier)
		}
		if err != nil {
			return fmt.Errorf("memstore: types[%d]: %w", i, err)
		}
	}
	for i, sample := range f.Samples {
		kind, err := fixtureKind(sample.Kind)
		if err != nil {
			return fmt.Errorf("memstore: samples[%d]: %w", i, err)
		}
		end := sample.End
		if end.IsZero() {
			end = sample.Start
		}
		switch kind {
		case platform.KindQuantity:
			_, err = store.AddQuantitySample(sample.Identifier, sample.Start, end, sample.Value, platform.Unit(sample.Unit))
		case platform.KindCategory:
			_, err = store.AddCategorySample(sample.Identifier, sample.Start, end, int(sample.Value))
		default:
			err = fmt.Errorf("memstore: %s samples are not supported", kind)
		}
		if err != nil {
			return fmt.Errorf("memstore: samples[%d]: %w", i, err)
		}
	}
	for i, toggle := range f.Background {
		frequency, ok := platform.ParseUpdateFrequency(toggle.Frequency)
		if !ok {
			return fmt.Errorf("memstore: background[%d]: unknown frequency %q", i, toggle.Frequency)
		}
		t, ok := store.QuantityType(toggle.Identifier)
		if !ok {
			return fmt.Errorf("memstore: background[%d]: %w: quantity %q", i, ErrUnknownType, toggle.Identifier)
		}
		store.mu.Lock()
		store.background[platform.TypeKey(t)] = frequency
		store.mu.Unlock()
	}
	return nil
}

func fixtureKind(name string) (platform.Kind, error) {
	if name == "" {
		return platform.KindQuantity, nil
	}
	kind, ok := platform.ParseKind(strings.ToLower(name))
	if !ok {
		return 0, fmt.Errorf("unknown kind %q", name)
	}
	return kind, nil
}
