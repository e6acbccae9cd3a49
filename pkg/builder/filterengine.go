package builder

import (
	"github.com/joeydtaylor/pulsewire/pkg/internal/bandpass"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// FilterMode is exported from the internal types package.
type FilterMode = types.FilterMode

// Smoothing strategies accepted by FilterEngineWithMode.
const (
	ButterworthMode = types.ButterworthMode
	RunningMeanMode = types.RunningMeanMode
	GaussianMode    = types.GaussianMode
)

// NewFilterEngine creates a zero-phase waveform filter engine.
func NewFilterEngine(options ...types.Option[types.FilterEngine]) types.FilterEngine {
	return bandpass.NewFilterEngine(options...)
}

// FilterEngineWithLogger adds a logger to the FilterEngine.
func FilterEngineWithLogger(logger ...types.Logger) types.Option[types.FilterEngine] {
	return bandpass.WithLogger(logger...)
}

// FilterEngineWithComponentMetadata adds component metadata overrides.
func FilterEngineWithComponentMetadata(name string, id string) types.Option[types.FilterEngine] {
	return bandpass.WithComponentMetadata(name, id)
}

// FilterEngineWithMode selects the smoothing strategy.
func FilterEngineWithMode(mode FilterMode) types.Option[types.FilterEngine] {
	return bandpass.WithMode(mode)
}

// FilterEngineWithRunningMeanWindow sets the running-mean kernel width in samples.
func FilterEngineWithRunningMeanWindow(window int) types.Option[types.FilterEngine] {
	return bandpass.WithRunningMeanWindow(window)
}

// FilterEngineWithGaussianFWHM sets the Gaussian kernel width in milliseconds.
func FilterEngineWithGaussianFWHM(fwhm float64) types.Option[types.FilterEngine] {
	return bandpass.WithGaussianFWHM(fwhm)
}

// FilterEngineWithValueRange masks samples outside [min, max] to NaN before
// filtering, discarding physiologically implausible pressures.
func FilterEngineWithValueRange(min, max float64) types.Option[types.FilterEngine] {
	return bandpass.WithValueRange(min, max)
}
