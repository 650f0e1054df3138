package world

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
)

// ErrInvalidConfig is wrapped by every configuration error New returns.
var ErrInvalidConfig = errors.New("invalid world configuration")

// Generator types accepted by Options.Generator.
const (
	GeneratorDefault = "default"
	GeneratorFlat    = "flat"
)

// MinEvictionMargin is the smallest gap, in chunks, between the load radius
// and the eviction radius.
const MinEvictionMargin = 2

// Options configures a World.
type Options struct {
	Generator      string
	Terrain        gen.Settings
	RenderDistance int
	EvictionMargin int
}

// DefaultOptions loads 6 chunks around the observer and evicts beyond 8.
func DefaultOptions() Options {
	return Options{
		Generator:      GeneratorDefault,
		Terrain:        gen.DefaultSettings(),
		RenderDistance: 6,
		EvictionMargin: MinEvictionMargin,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if o cannot build a world.
func (o Options) Validate() error {
	var errs []error
	switch o.Generator {
	case GeneratorDefault, GeneratorFlat:
	default:
		errs = append(errs, fmt.Errorf("unknown generator %q", o.Generator))
	}
	if o.RenderDistance < 0 {
		errs = append(errs, fmt.Errorf("render distance must not be negative, got %d", o.RenderDistance))
	}
	if o.EvictionMargin < MinEvictionMargin {
		errs = append(errs, fmt.Errorf("eviction margin must be at least %d, got %d", MinEvictionMargin, o.EvictionMargin))
	}
	if err := o.Terrain.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (o Options) newGenerator() gen.Generator {
	if o.Generator == GeneratorFlat {
		return gen.NewFlatGenerator(o.Terrain)
	}
	return gen.NewTerrainGenerator(o.Terrain)
}
