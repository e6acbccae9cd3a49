// Package analyzer provides options for configuring Analyzer components.
package analyzer

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// WithLogger creates an option to add a logger to an Analyzer.
func WithLogger(logger ...types.Logger) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.ConnectLogger(logger...)
	}
}

// WithComponentMetadata adds component metadata overrides.
func WithComponentMetadata(name string, id string) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.SetComponentMetadata(name, id)
	}
}

// WithFilterEngine attaches the band-pass stage.
func WithFilterEngine(fe types.FilterEngine) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.ConnectFilterEngine(fe)
	}
}

// WithPeakDetector attaches the systolic peak stage.
func WithPeakDetector(pd types.PeakDetector) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.ConnectPeakDetector(pd)
	}
}

// WithVitalsCalculator attaches the metrics stage.
func WithVitalsCalculator(vc types.VitalsCalculator) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.ConnectVitalsCalculator(vc)
	}
}

// WithFrequencyAnalyzer attaches the spectrum stage.
func WithFrequencyAnalyzer(fa types.FrequencyAnalyzer) types.Option[types.Analyzer] {
	return func(a types.Analyzer) {
		a.ConnectFrequencyAnalyzer(fa)
	}
}
