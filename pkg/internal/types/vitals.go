package types

import "context"

// VitalsCalculator derives physiological metrics from a PeakSet. Every metric
// that cannot be computed from the available peaks is reported as an explicit
// undefined Metric with a reason code, never as a fabricated number.
type VitalsCalculator interface {
	ConnectLogger(...Logger)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	GetComponentMetadata() ComponentMetadata

	SetComponentMetadata(name string, id string)

	// SetSQIReliability sets the minimum SQI score and beat count required
	// before the SQIReliable flag is raised.
	SetSQIReliability(minScore float64, minBeats int)

	// Compute derives HR, HRV (SDNN and RMSSD), pulse pressure, and SQI from
	// the peak set. It fails only with *ValidationError when the peak set is
	// nil or carries a non-positive sampling rate; small peak counts are not
	// errors.
	Compute(ctx context.Context, peaks *PeakSet) (*VitalsResult, error)
}
