package pyramid

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Options tune how a Pyramid is built.
type Options struct {
	// Deepest zoom level that gets tiles
	MaxZoom uint `default:"8" validate:"max=24" mapstructure:"maxzoom"`
	// Decimation cell size in tile-local units for zoom levels below MaxZoom. 0 keeps every point.
	Tolerance float64 `default:"10" validate:"min=0" mapstructure:"tolerance"`
	// Size of the tile-local coordinate space
	Extent uint `default:"4096" validate:"oneof=256 512 1024 2048 4096 8192" mapstructure:"extent"`
	// Extra margin in tile-local units in which points of neighbouring tiles are included
	Buffer uint `default:"0" validate:"max=4096" mapstructure:"buffer"`
	// Number of levels at which subtrees are built concurrently
	ParallelLevels uint `default:"2" validate:"max=6" mapstructure:"parallellevels"`
}

// DefaultOptions returns the options the tile server ships with.
func DefaultOptions() Options {
	var o Options
	if err := defaults.Set(&o); err != nil {
		panic(fmt.Errorf("invalid default pyramid options: %w", err))
	}
	return o
}

func (o Options) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid pyramid options: %w", err)
	}
	return nil
}

// worldSize is the number of deepest level cells along one axis of the world.
func (o Options) worldSize() int64 {
	return int64(o.Extent) << o.MaxZoom
}

// shift is the number of halvings from the deepest level grid to the tile-local grid of level l.
func (o Options) shift(l Level) uint {
	return o.MaxZoom - l
}
