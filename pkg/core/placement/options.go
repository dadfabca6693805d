package placement

import "github.com/matzehuels/shelfplan/pkg/errors"

// Default tolerances.
const (
	// DefaultVerticalTolerance is the largest bottom-to-support distance that
	// still counts as resting on that support.
	DefaultVerticalTolerance = 30.0

	// DefaultStackOverlapRatio is the share of the narrower width two items
	// must have in common before one can rest on the other.
	DefaultStackOverlapRatio = 0.3

	// DefaultBandTolerance absorbs floating point noise when comparing the
	// vertical bands and horizontal spans of two rectangles.
	DefaultBandTolerance = 0.5
)

// Options tunes the engine. Zero values mean "use the default".
type Options struct {
	VerticalTolerance float64 `json:"vertical_tolerance,omitempty" toml:"vertical_tolerance"`
	StackOverlapRatio float64 `json:"stack_overlap_ratio,omitempty" toml:"stack_overlap_ratio"`
	BandTolerance     float64 `json:"band_tolerance,omitempty" toml:"band_tolerance"`

	// DisableClamp skips pulling the proposed X back inside the layout before
	// collision resolution.
	DisableClamp bool `json:"disable_clamp,omitempty" toml:"disable_clamp"`
}

// SetDefaults fills in zero-valued tolerances.
func (o *Options) SetDefaults() {
	if o.VerticalTolerance == 0 {
		o.VerticalTolerance = DefaultVerticalTolerance
	}
	if o.StackOverlapRatio == 0 {
		o.StackOverlapRatio = DefaultStackOverlapRatio
	}
	if o.BandTolerance == 0 {
		o.BandTolerance = DefaultBandTolerance
	}
}

// Validate rejects negative or non-finite tolerances.
func (o Options) Validate() error {
	if err := errors.ValidateDimension("vertical tolerance", o.VerticalTolerance); err != nil {
		return err
	}
	if err := errors.ValidateDimension("stack overlap ratio", o.StackOverlapRatio); err != nil {
		return err
	}
	if o.StackOverlapRatio > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "stack overlap ratio must be at most 1, got %v", o.StackOverlapRatio)
	}
	return errors.ValidateDimension("band tolerance", o.BandTolerance)
}
