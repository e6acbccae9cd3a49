package bandpass

import (
	"context"
	"math"
	"sync"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/utils"
)

const (
	// DefaultRunningMeanWindow is the kernel width, in samples, for RunningMeanMode.
	DefaultRunningMeanWindow = 5
	// DefaultGaussianFWHM is the kernel full-width-at-half-maximum, in milliseconds, for GaussianMode.
	DefaultGaussianFWHM = 1.0
)

// FilterEngine applies a configurable smoothing filter to waveform records.
// The default mode designs a Butterworth band-pass from the caller's
// FilterSpec and applies it zero-phase, so filtered features stay
// time-aligned with the raw record. Engines hold no per-call state.
type FilterEngine struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	mode          types.FilterMode
	meanWindow    int
	gaussianFWHM  float64
	valueMin      float64
	valueMax      float64
	valueRangeSet bool
	configMu      sync.Mutex

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewFilterEngine constructs a FilterEngine with optional configuration.
func NewFilterEngine(options ...types.Option[types.FilterEngine]) types.FilterEngine {
	fe := &FilterEngine{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "FILTER_ENGINE",
		},
		mode:         types.ButterworthMode,
		meanWindow:   DefaultRunningMeanWindow,
		gaussianFWHM: DefaultGaussianFWHM,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(fe)
	}

	return fe
}

// GetComponentMetadata returns the engine metadata.
func (fe *FilterEngine) GetComponentMetadata() types.ComponentMetadata {
	fe.metadataMu.Lock()
	defer fe.metadataMu.Unlock()
	return fe.componentMetadata
}

// SetComponentMetadata overrides the engine name and id.
func (fe *FilterEngine) SetComponentMetadata(name string, id string) {
	fe.metadataMu.Lock()
	defer fe.metadataMu.Unlock()
	if name != "" {
		fe.componentMetadata.Name = name
	}
	if id != "" {
		fe.componentMetadata.ID = id
	}
}

// SetMode switches the smoothing strategy.
func (fe *FilterEngine) SetMode(mode types.FilterMode) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	fe.mode = mode
}

// SetRunningMeanWindow sets the RunningMeanMode kernel width in samples.
func (fe *FilterEngine) SetRunningMeanWindow(window int) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	fe.meanWindow = window
}

// SetGaussianFWHM sets the GaussianMode kernel width in milliseconds.
func (fe *FilterEngine) SetGaussianFWHM(fwhm float64) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	fe.gaussianFWHM = fwhm
}

// SetValueRange masks samples outside [min, max] to NaN before filtering.
// A degenerate range (min >= max) disables masking.
func (fe *FilterEngine) SetValueRange(min, max float64) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	fe.valueMin = min
	fe.valueMax = max
	fe.valueRangeSet = min < max
}

func (fe *FilterEngine) snapshotConfig() (types.FilterMode, int, float64) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	return fe.mode, fe.meanWindow, fe.gaussianFWHM
}

func (fe *FilterEngine) snapshotValueRange() (float64, float64, bool) {
	fe.configMu.Lock()
	defer fe.configMu.Unlock()
	return fe.valueMin, fe.valueMax, fe.valueRangeSet
}

// Apply filters the record according to the configured mode and returns a
// FilteredWaveform of identical length. Interior NaN runs are bridged by
// linear interpolation before filtering so the IIR state is never poisoned;
// an entirely non-finite record fails with *types.EmptySignalError.
func (fe *FilterEngine) Apply(ctx context.Context, record *types.WaveformRecord, spec types.FilterSpec) (*types.FilteredWaveform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if record == nil || len(record.Samples) == 0 {
		return nil, &types.EmptySignalError{Reason: "record has no samples"}
	}
	if record.SamplingRate <= 0 {
		return nil, &types.ValidationError{Field: "samplingRate", Reason: "must be > 0"}
	}

	samples := record.Samples
	if min, max, set := fe.snapshotValueRange(); set {
		samples = maskValueRange(samples, min, max)
	}

	clean, finite := bridgeNaNs(samples)
	if finite == 0 {
		return nil, &types.EmptySignalError{Reason: "record contains no finite samples"}
	}

	mode, meanWindow, gaussianFWHM := fe.snapshotConfig()

	var (
		filtered []float64
		err      error
	)
	switch mode {
	case types.ButterworthMode:
		filtered, err = fe.applyButterworth(clean, record, spec)
	case types.RunningMeanMode:
		filtered, err = applyRunningMean(clean, meanWindow)
	case types.GaussianMode:
		filtered, err = applyGaussian(clean, record.SamplingRate, gaussianFWHM)
	default:
		err = &types.ValidationError{Field: "mode", Reason: "unknown filter mode " + string(mode)}
	}
	if err != nil {
		fe.NotifyLoggers(types.ErrorLevel, "filter apply failed",
			"component", fe.GetComponentMetadata().ID, "mode", string(mode), "error", err.Error())
		return nil, err
	}

	fe.NotifyLoggers(types.DebugLevel, "filter applied",
		"component", fe.GetComponentMetadata().ID, "mode", string(mode), "samples", len(filtered))

	return &types.FilteredWaveform{Samples: filtered, SamplingRate: record.SamplingRate}, nil
}

func (fe *FilterEngine) applyButterworth(samples []float64, record *types.WaveformRecord, spec types.FilterSpec) ([]float64, error) {
	if err := validateSpec(spec, record.Nyquist()); err != nil {
		return nil, err
	}

	sections := designBandpass(spec.LowCutoff, spec.HighCutoff, spec.Order, record.SamplingRate)
	return filtfilt(sections, samples, spec.Order)
}

func validateSpec(spec types.FilterSpec, nyquist float64) error {
	switch {
	case spec.Order < 1:
		return &types.ValidationError{Field: "order", Reason: "must be >= 1"}
	case spec.LowCutoff <= 0:
		return &types.ValidationError{Field: "lowCutoff", Reason: "must be > 0"}
	case spec.LowCutoff >= spec.HighCutoff:
		return &types.ValidationError{Field: "lowCutoff", Reason: "must be below highCutoff"}
	case spec.HighCutoff >= nyquist:
		return &types.ValidationError{Field: "highCutoff", Reason: "must be below the Nyquist frequency"}
	}
	return nil
}

// maskValueRange copies the signal with every sample outside [min, max]
// replaced by NaN, so implausible pressures are bridged like any other
// invalid run instead of leaking into the filter state.
func maskValueRange(samples []float64, min, max float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		if v < min || v > max {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// bridgeNaNs replaces non-finite samples with linear interpolation between the
// neighbouring finite samples, clamping leading and trailing runs to the
// nearest finite value. Returns the cleaned copy and the finite sample count.
func bridgeNaNs(samples []float64) ([]float64, int) {
	out := make([]float64, len(samples))
	copy(out, samples)

	finite := 0
	lastFinite := -1
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite++
		if lastFinite < 0 {
			// Clamp the leading run.
			for j := 0; j < i; j++ {
				out[j] = v
			}
		} else if gap := i - lastFinite; gap > 1 {
			step := (v - out[lastFinite]) / float64(gap)
			for j := lastFinite + 1; j < i; j++ {
				out[j] = out[lastFinite] + step*float64(j-lastFinite)
			}
		}
		lastFinite = i
	}
	if finite == 0 {
		return out, 0
	}
	// Clamp the trailing run.
	for j := lastFinite + 1; j < len(out); j++ {
		out[j] = out[lastFinite]
	}
	return out, finite
}
