package types

import "context"

// Analyzer sequences the filter, peak-detection, vitals, and spectrum stages
// over one waveform record and assembles a consolidated AnalysisResult. Stage
// failures are recorded against the affected stage only; every independent
// stage still runs, so the result always carries whatever could be computed.
type Analyzer interface {
	ConnectLogger(...Logger)

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	GetComponentMetadata() ComponentMetadata

	SetComponentMetadata(name string, id string)

	ConnectFilterEngine(FilterEngine)

	ConnectPeakDetector(PeakDetector)

	ConnectVitalsCalculator(VitalsCalculator)

	ConnectFrequencyAnalyzer(FrequencyAnalyzer)

	// Analyze runs the full pipeline. It never returns an error: per-stage
	// failures are values inside the result. A canceled context marks the
	// remaining stages canceled.
	Analyze(ctx context.Context, record *WaveformRecord, spec FilterSpec) *AnalysisResult
}

// Session serializes analysis requests with last-request-wins semantics: a new
// Submit cancels the in-flight analysis and its result is discarded, never
// merged.
type Session interface {
	Submit(record *WaveformRecord, spec FilterSpec)

	Results() <-chan *AnalysisResult

	Close()
}
