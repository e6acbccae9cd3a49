// Package vitals provides options for configuring VitalsCalculator components.
package vitals

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// WithLogger creates an option to add a logger to a VitalsCalculator.
func WithLogger(logger ...types.Logger) types.Option[types.VitalsCalculator] {
	return func(vc types.VitalsCalculator) {
		vc.ConnectLogger(logger...)
	}
}

// WithComponentMetadata adds component metadata overrides.
func WithComponentMetadata(name string, id string) types.Option[types.VitalsCalculator] {
	return func(vc types.VitalsCalculator) {
		vc.SetComponentMetadata(name, id)
	}
}

// WithSQIReliability sets the minimum SQI score and beat count behind the
// SQIReliable flag.
func WithSQIReliability(minScore float64, minBeats int) types.Option[types.VitalsCalculator] {
	return func(vc types.VitalsCalculator) {
		vc.SetSQIReliability(minScore, minBeats)
	}
}
