package builder

import (
	"github.com/joeydtaylor/pulsewire/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// Window names accepted by FrequencyAnalyzerWithWindow.
const (
	HannWindow        = spectral.HannWindow
	HammingWindow     = spectral.HammingWindow
	RectangularWindow = spectral.RectangularWindow
)

// NewFrequencyAnalyzer creates a power spectrum analyzer.
func NewFrequencyAnalyzer(options ...types.Option[types.FrequencyAnalyzer]) types.FrequencyAnalyzer {
	return spectral.NewFrequencyAnalyzer(options...)
}

// FrequencyAnalyzerWithLogger adds a logger to the FrequencyAnalyzer.
func FrequencyAnalyzerWithLogger(logger ...types.Logger) types.Option[types.FrequencyAnalyzer] {
	return spectral.WithLogger(logger...)
}

// FrequencyAnalyzerWithComponentMetadata adds component metadata overrides.
func FrequencyAnalyzerWithComponentMetadata(name string, id string) types.Option[types.FrequencyAnalyzer] {
	return spectral.WithComponentMetadata(name, id)
}

// FrequencyAnalyzerWithWindow selects the taper applied before the transform.
func FrequencyAnalyzerWithWindow(name string) types.Option[types.FrequencyAnalyzer] {
	return spectral.WithWindow(name)
}
