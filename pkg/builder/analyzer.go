package builder

import (
	"github.com/joeydtaylor/pulsewire/pkg/internal/analyzer"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// NewAnalyzer creates a pipeline analyzer that sequences the filter, peak,
// vitals, and spectrum stages over one waveform record.
func NewAnalyzer(options ...types.Option[types.Analyzer]) types.Analyzer {
	return analyzer.NewAnalyzer(options...)
}

// NewSession wraps an analyzer with last-request-wins submission semantics.
func NewSession(a types.Analyzer) types.Session {
	return analyzer.NewSession(a)
}

// AnalyzerWithLogger adds a logger to the Analyzer.
func AnalyzerWithLogger(logger ...types.Logger) types.Option[types.Analyzer] {
	return analyzer.WithLogger(logger...)
}

// AnalyzerWithComponentMetadata adds component metadata overrides.
func AnalyzerWithComponentMetadata(name string, id string) types.Option[types.Analyzer] {
	return analyzer.WithComponentMetadata(name, id)
}

// AnalyzerWithFilterEngine attaches the band-pass stage.
func AnalyzerWithFilterEngine(fe types.FilterEngine) types.Option[types.Analyzer] {
	return analyzer.WithFilterEngine(fe)
}

// AnalyzerWithPeakDetector attaches the systolic peak stage.
func AnalyzerWithPeakDetector(pd types.PeakDetector) types.Option[types.Analyzer] {
	return analyzer.WithPeakDetector(pd)
}

// AnalyzerWithVitalsCalculator attaches the metrics stage.
func AnalyzerWithVitalsCalculator(vc types.VitalsCalculator) types.Option[types.Analyzer] {
	return analyzer.WithVitalsCalculator(vc)
}

// AnalyzerWithFrequencyAnalyzer attaches the spectrum stage.
func AnalyzerWithFrequencyAnalyzer(fa types.FrequencyAnalyzer) types.Option[types.Analyzer] {
	return analyzer.WithFrequencyAnalyzer(fa)
}
