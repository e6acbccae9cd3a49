// Package spectral provides options for configuring FrequencyAnalyzer components.
package spectral

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// WithLogger creates an option to add a logger to a FrequencyAnalyzer.
func WithLogger(logger ...types.Logger) types.Option[types.FrequencyAnalyzer] {
	return func(fa types.FrequencyAnalyzer) {
		fa.ConnectLogger(logger...)
	}
}

// WithComponentMetadata adds component metadata overrides.
func WithComponentMetadata(name string, id string) types.Option[types.FrequencyAnalyzer] {
	return func(fa types.FrequencyAnalyzer) {
		fa.SetComponentMetadata(name, id)
	}
}

// WithWindow selects the taper applied before the transform: "hann",
// "hamming", or "rectangular".
func WithWindow(name string) types.Option[types.FrequencyAnalyzer] {
	return func(fa types.FrequencyAnalyzer) {
		fa.SetWindow(name)
	}
}
