package types

import (
	"encoding/json"
	"math"
	"time"
)

// WaveformRecord is an immutable arterial blood pressure recording handed to the
// pipeline by the record-loading collaborator. Samples are in the recording's
// native unit (typically mmHg) at a fixed sampling rate.
type WaveformRecord struct {
	Samples      []float64 `json:"samples"`
	SamplingRate float64   `json:"samplingRate"` // Hz, must be > 0.
	Channel      string    `json:"channel,omitempty"`
}

// Nyquist returns the record's Nyquist frequency in Hz.
func (r *WaveformRecord) Nyquist() float64 {
	return r.SamplingRate / 2.0
}

// Duration returns the record length in seconds.
func (r *WaveformRecord) Duration() float64 {
	if r.SamplingRate <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / r.SamplingRate
}

// FilterSpec describes the Butterworth band-pass requested by the caller.
// Valid when 0 < LowCutoff < HighCutoff < Nyquist and Order >= 1.
type FilterSpec struct {
	LowCutoff  float64 `json:"lowCutoff"`  // Hz
	HighCutoff float64 `json:"highCutoff"` // Hz
	Order      int     `json:"order"`
}

// FilteredWaveform is the band-passed signal. Same length and time base as the
// source record; holds no reference back to it.
type FilteredWaveform struct {
	Samples      []float64 `json:"samples"`
	SamplingRate float64   `json:"samplingRate"`
}

// Peak marks one detected extremum in a sample sequence.
type Peak struct {
	Index     int     `json:"index"`
	Time      float64 `json:"time"` // seconds, Index / SamplingRate.
	Amplitude float64 `json:"amplitude"`
}

// PeakSet holds the systolic peaks detected in one sample sequence, in strictly
// increasing index order, plus the diastolic troughs found between consecutive
// peaks. Troughs[i] lies between Peaks[i] and Peaks[i+1].
type PeakSet struct {
	Peaks        []Peak  `json:"peaks"`
	Troughs      []Peak  `json:"troughs,omitempty"`
	SamplingRate float64 `json:"samplingRate"`
}

// MetricReason explains why a metric could not be computed.
type MetricReason string

const (
	ReasonNone             MetricReason = ""
	ReasonTooFewPeaks      MetricReason = "too_few_peaks"
	ReasonTooFewIntervals  MetricReason = "too_few_intervals"
	ReasonNoMatchedTroughs MetricReason = "no_matched_troughs"
	ReasonZeroMeanInterval MetricReason = "zero_mean_interval"
)

// Metric is a single derived value with an explicit validity marker. An
// uncomputable metric carries Valid=false, a NaN value, and a reason code;
// it is never silently reported as zero.
type Metric struct {
	Value  float64      `json:"-"`
	Valid  bool         `json:"valid"`
	Reason MetricReason `json:"reason,omitempty"`
}

// UndefinedMetric builds the explicit "no value" outcome for a reason.
func UndefinedMetric(reason MetricReason) Metric {
	return Metric{Value: math.NaN(), Valid: false, Reason: reason}
}

// DefinedMetric wraps a computed value.
func DefinedMetric(value float64) Metric {
	return Metric{Value: value, Valid: true}
}

// MarshalJSON emits null for undefined or non-finite values so results stay
// serializable for the visualization layer.
func (m Metric) MarshalJSON() ([]byte, error) {
	type alias struct {
		Value  *float64     `json:"value"`
		Valid  bool         `json:"valid"`
		Reason MetricReason `json:"reason,omitempty"`
	}
	a := alias{Valid: m.Valid, Reason: m.Reason}
	if m.Valid && !math.IsNaN(m.Value) && !math.IsInf(m.Value, 0) {
		v := m.Value
		a.Value = &v
	}
	return json.Marshal(a)
}

// VitalsResult aggregates the physiological metrics derived from one PeakSet.
type VitalsResult struct {
	HeartRate Metric `json:"heartRate"` // beats per minute.
	SDNN      Metric `json:"sdnn"`      // interval standard deviation, milliseconds.
	RMSSD     Metric `json:"rmssd"`     // successive-difference RMS, milliseconds.

	PulsePressures []float64 `json:"pulsePressures,omitempty"` // per matched beat.
	PulsePressure  Metric    `json:"pulsePressure"`            // aggregate mean.

	SQI         Metric `json:"sqi"` // bounded [0,1] periodicity score.
	SQIReliable bool   `json:"sqiReliable"`

	BeatCount int       `json:"beatCount"`
	Intervals []float64 `json:"intervals,omitempty"` // inter-beat intervals, seconds.
}

// SpectralBin is one (frequency, power) pair of a one-sided spectrum.
type SpectralBin struct {
	Frequency float64 `json:"frequency"` // Hz
	Power     float64 `json:"power"`
}

// SpectrumResult is the frequency-domain representation of a sample sequence,
// consumed only by visualization. Bins span [0, Nyquist].
type SpectrumResult struct {
	Bins              []SpectralBin `json:"bins"`
	Resolution        float64       `json:"resolution"` // Hz between bins.
	DominantFrequency float64       `json:"dominantFrequency"`
	TotalPower        float64       `json:"totalPower"`
	Window            string        `json:"window"`
}

// StageName identifies one pipeline stage inside an AnalysisResult.
type StageName string

const (
	StageFilter      StageName = "filter"
	StagePeaks       StageName = "peaks"
	StageRawPeaks    StageName = "raw-peaks"
	StageVitals      StageName = "vitals"
	StageRawVitals   StageName = "raw-vitals"
	StageSpectrum    StageName = "spectrum"
	StageRawSpectrum StageName = "raw-spectrum"
)

// StageState tracks a stage's progress through the analysis state machine.
type StageState string

const (
	StagePending  StageState = "pending"
	StageRunning  StageState = "running"
	StageDone     StageState = "done"
	StageFailed   StageState = "failed"
	StageSkipped  StageState = "skipped"
	StageCanceled StageState = "canceled"
)

// StageStatus records how one stage finished. Err is nil unless State is
// StageFailed.
type StageStatus struct {
	State StageState `json:"state"`
	Err   error      `json:"-"`
	Error string     `json:"error,omitempty"` // string form of Err for serialization.
}

// Failed reports whether the stage ended in failure.
func (s StageStatus) Failed() bool { return s.State == StageFailed }

// AnalysisResult is the consolidated output of one analysis request. It is
// assembled once and never mutated afterwards; re-running with new parameters
// produces a fresh result that supersedes this one.
type AnalysisResult struct {
	ID     string          `json:"id"`
	Record *WaveformRecord `json:"-"`

	Filtered *FilteredWaveform `json:"filtered,omitempty"`

	Peaks    *PeakSet `json:"peaks,omitempty"`    // detected on the filtered signal.
	RawPeaks *PeakSet `json:"rawPeaks,omitempty"` // detected on the original signal.

	Vitals    *VitalsResult `json:"vitals,omitempty"`
	RawVitals *VitalsResult `json:"rawVitals,omitempty"`

	Spectrum    *SpectrumResult `json:"spectrum,omitempty"`    // of the filtered signal.
	RawSpectrum *SpectrumResult `json:"rawSpectrum,omitempty"` // of the original signal.

	Stages map[StageName]StageStatus `json:"stages"`

	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
}

// StageFailed reports whether the named stage failed.
func (r *AnalysisResult) StageFailed(name StageName) bool {
	return r.Stages[name].Failed()
}

// StageDone reports whether the named stage completed successfully.
func (r *AnalysisResult) StageDone(name StageName) bool {
	return r.Stages[name].State == StageDone
}
