package types

import "context"

// PeakDetector locates systolic peaks and diastolic troughs in a sample
// sequence. Detection is deterministic: identical inputs always produce
// identical PeakSets. Degenerate inputs (flat, empty, all-NaN) yield an empty
// PeakSet rather than an error so downstream metrics can report "undefined"
// cleanly.
type PeakDetector interface {
	ConnectLogger(...Logger)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	GetComponentMetadata() ComponentMetadata

	SetComponentMetadata(name string, id string)

	// SetHeartRateCeiling sets the physiological maximum, in beats per
	// minute, that derives the minimum inter-peak distance.
	SetHeartRateCeiling(float64)

	// SetHeightPercentile sets the percentile of the finite samples used as
	// the minimum peak amplitude.
	SetHeightPercentile(float64)

	// SetMinProminenceFraction sets the minimum peak prominence as a
	// fraction of the finite amplitude range.
	SetMinProminenceFraction(float64)

	// Detect scans samples at the given sampling rate. It fails only with
	// *ValidationError when samplingRate <= 0.
	Detect(ctx context.Context, samples []float64, samplingRate float64) (*PeakSet, error)
}
