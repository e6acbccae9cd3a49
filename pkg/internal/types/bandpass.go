package types

import "context"

// FilterMode selects which smoothing strategy a FilterEngine applies.
type FilterMode string

const (
	ButterworthMode FilterMode = "butterworth"
	RunningMeanMode FilterMode = "running-mean"
	GaussianMode    FilterMode = "gaussian"
)

// FilterEngine designs and applies a smoothing filter to a waveform record.
// The default mode is a zero-phase Butterworth band-pass, so output features
// stay time-aligned with the input. Engines are stateless between calls and
// safe for concurrent use with different inputs.
type FilterEngine interface {
	ConnectLogger(...Logger)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	GetComponentMetadata() ComponentMetadata

	SetComponentMetadata(name string, id string)

	// SetMode switches the smoothing strategy. ButterworthMode is the default.
	SetMode(FilterMode)

	// SetRunningMeanWindow sets the kernel width, in samples, used by
	// RunningMeanMode.
	SetRunningMeanWindow(int)

	// SetGaussianFWHM sets the full-width-at-half-maximum, in milliseconds,
	// of the GaussianMode kernel.
	SetGaussianFWHM(float64)

	// SetValueRange masks samples outside [min, max] to NaN before
	// filtering, discarding physiologically implausible pressures.
	// Disabled unless min < max.
	SetValueRange(min, max float64)

	// Apply validates spec against the record and returns a filtered waveform
	// of identical length. It fails with *ValidationError for a bad spec,
	// *EmptySignalError for an empty or all-NaN record, and
	// *InsufficientDataError when the record is too short for zero-phase
	// edge padding at the requested order.
	Apply(ctx context.Context, record *WaveformRecord, spec FilterSpec) (*FilteredWaveform, error)
}
