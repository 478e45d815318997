package crop

import "github.com/OliverZhaohaibin/iphotron-warp/internal/warp"

// Options are the tunables of a Session. Zero or invalid fields resolve
// to defaults, so callers can set only what they care about.
type Options struct {
	// TiltRangeDeg is the rotation a tilt input of ±1 maps to.
	TiltRangeDeg float64
	// StraightenRangeDeg bounds the straighten slider.
	StraightenRangeDeg float64
	// MaxFitScale bounds the containment shrink factor.
	MaxFitScale float64
	// EdgeThresholdPx is the edge-push trigger distance in device
	// pixels (before display-ratio scaling).
	EdgeThresholdPx float64
	// MaxShrinkRate is the largest per-update view-scale reduction
	// applied by edge push (0.05 = 5%).
	MaxShrinkRate float64
	// MinViewScale / MaxViewScale clamp the view zoom.
	MinViewScale float64
	MaxViewScale float64
	// MinCropSize is the smallest crop edge length in texture units.
	MinCropSize float64
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		TiltRangeDeg:       warp.DefaultTiltRangeDeg,
		StraightenRangeDeg: 45,
		MaxFitScale:        warp.DefaultMaxFitScale,
		EdgeThresholdPx:    48,
		MaxShrinkRate:      0.05,
		MinViewScale:       0.05,
		MaxViewScale:       16,
		MinCropSize:        0.05,
	}
}

// Resolve fills unset or out-of-range fields with defaults.
func (o *Options) Resolve() {
	def := DefaultOptions()
	if o.TiltRangeDeg <= 0 {
		o.TiltRangeDeg = def.TiltRangeDeg
	}
	if o.StraightenRangeDeg <= 0 {
		o.StraightenRangeDeg = def.StraightenRangeDeg
	}
	if o.MaxFitScale < 1 {
		o.MaxFitScale = def.MaxFitScale
	}
	if o.EdgeThresholdPx <= 0 {
		o.EdgeThresholdPx = def.EdgeThresholdPx
	}
	if o.MaxShrinkRate <= 0 || o.MaxShrinkRate >= 1 {
		o.MaxShrinkRate = def.MaxShrinkRate
	}
	if o.MinViewScale <= 0 {
		o.MinViewScale = def.MinViewScale
	}
	if o.MaxViewScale <= o.MinViewScale {
		o.MaxViewScale = def.MaxViewScale
	}
	if o.MinCropSize <= 0 || o.MinCropSize >= 1 {
		o.MinCropSize = def.MinCropSize
	}
}
