// Package beatdetect provides options for configuring PeakDetector components.
package beatdetect

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// WithLogger creates an option to add a logger to a PeakDetector.
func WithLogger(logger ...types.Logger) types.Option[types.PeakDetector] {
	return func(pd types.PeakDetector) {
		pd.ConnectLogger(logger...)
	}
}

// WithComponentMetadata adds component metadata overrides.
func WithComponentMetadata(name string, id string) types.Option[types.PeakDetector] {
	return func(pd types.PeakDetector) {
		pd.SetComponentMetadata(name, id)
	}
}

// WithHeartRateCeiling sets the maximum plausible heart rate in bpm; the
// minimum inter-peak distance is derived from it.
func WithHeartRateCeiling(bpm float64) types.Option[types.PeakDetector] {
	return func(pd types.PeakDetector) {
		pd.SetHeartRateCeiling(bpm)
	}
}

// WithHeightPercentile sets the percentile of finite samples used as the
// minimum peak amplitude.
func WithHeightPercentile(p float64) types.Option[types.PeakDetector] {
	return func(pd types.PeakDetector) {
		pd.SetHeightPercentile(p)
	}
}

// WithMinProminenceFraction sets the prominence floor as a fraction of the
// finite amplitude range.
func WithMinProminenceFraction(f float64) types.Option[types.PeakDetector] {
	return func(pd types.PeakDetector) {
		pd.SetMinProminenceFraction(f)
	}
}
