package builder

import (
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/vitals"
)

// NewVitalsCalculator creates a vitals metrics calculator.
func NewVitalsCalculator(options ...types.Option[types.VitalsCalculator]) types.VitalsCalculator {
	return vitals.NewVitalsCalculator(options...)
}

// VitalsCalculatorWithLogger adds a logger to the VitalsCalculator.
func VitalsCalculatorWithLogger(logger ...types.Logger) types.Option[types.VitalsCalculator] {
	return vitals.WithLogger(logger...)
}

// VitalsCalculatorWithComponentMetadata adds component metadata overrides.
func VitalsCalculatorWithComponentMetadata(name string, id string) types.Option[types.VitalsCalculator] {
	return vitals.WithComponentMetadata(name, id)
}

// VitalsCalculatorWithSQIReliability sets the minimum SQI score and beat count
// required before a quality index is flagged reliable.
func VitalsCalculatorWithSQIReliability(minScore float64, minBeats int) types.Option[types.VitalsCalculator] {
	return vitals.WithSQIReliability(minScore, minBeats)
}
