// Package bandpass provides options for configuring FilterEngine components.
package bandpass

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// WithLogger creates an option to add a logger to a FilterEngine.
func WithLogger(logger ...types.Logger) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.ConnectLogger(logger...)
	}
}

// WithComponentMetadata adds component metadata overrides.
func WithComponentMetadata(name string, id string) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.SetComponentMetadata(name, id)
	}
}

// WithMode selects the smoothing strategy applied by the engine.
func WithMode(mode types.FilterMode) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.SetMode(mode)
	}
}

// WithRunningMeanWindow sets the RunningMeanMode kernel width in samples.
func WithRunningMeanWindow(window int) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.SetRunningMeanWindow(window)
	}
}

// WithGaussianFWHM sets the GaussianMode kernel full-width-at-half-maximum in milliseconds.
func WithGaussianFWHM(fwhm float64) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.SetGaussianFWHM(fwhm)
	}
}

// WithValueRange masks samples outside [min, max] to NaN before filtering.
func WithValueRange(min, max float64) types.Option[types.FilterEngine] {
	return func(fe types.FilterEngine) {
		fe.SetValueRange(min, max)
	}
}
