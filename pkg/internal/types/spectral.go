package types

import "context"

// FrequencyAnalyzer computes a one-sided power spectrum of a sample sequence
// for display. It is a pure function of its input with no dependency on filter
// or peak state, so it can run independently of the beat pipeline.
type FrequencyAnalyzer interface {
	ConnectLogger(...Logger)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	GetComponentMetadata() ComponentMetadata

	SetComponentMetadata(name string, id string)

	// SetWindow selects the taper applied before the transform: "hann"
	// (default), "hamming", or "rectangular".
	SetWindow(string)

	// Analyze windows the finite samples and transforms them. It fails with
	// *EmptySignalError when no finite samples exist and *ValidationError
	// when samplingRate <= 0.
	Analyze(ctx context.Context, samples []float64, samplingRate float64) (*SpectrumResult, error)
}
