package spectral

import (
	"context"
	"math"
	"math/cmplx"
	"sync"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/utils"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"
)

// Window names accepted by SetWindow.
const (
	HannWindow        = "hann"
	HammingWindow     = "hamming"
	RectangularWindow = "rectangular"
)

// FrequencyAnalyzer computes a one-sided power spectrum of a sample sequence
// for the visualization layer. It is a pure function of its input: no filter
// or peak state is consulted, so it can run concurrently with the beat
// pipeline.
type FrequencyAnalyzer struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	windowName string
	configMu   sync.Mutex

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewFrequencyAnalyzer constructs a FrequencyAnalyzer with optional configuration.
func NewFrequencyAnalyzer(options ...types.Option[types.FrequencyAnalyzer]) types.FrequencyAnalyzer {
	fa := &FrequencyAnalyzer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "FREQUENCY_ANALYZER",
		},
		windowName: HannWindow,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(fa)
	}

	return fa
}

// GetComponentMetadata returns the analyzer metadata.
func (fa *FrequencyAnalyzer) GetComponentMetadata() types.ComponentMetadata {
	fa.metadataMu.Lock()
	defer fa.metadataMu.Unlock()
	return fa.componentMetadata
}

// SetComponentMetadata overrides the analyzer name and id.
func (fa *FrequencyAnalyzer) SetComponentMetadata(name string, id string) {
	fa.metadataMu.Lock()
	defer fa.metadataMu.Unlock()
	if name != "" {
		fa.componentMetadata.Name = name
	}
	if id != "" {
		fa.componentMetadata.ID = id
	}
}

// SetWindow selects the taper applied before the transform. Unknown names
// are ignored.
func (fa *FrequencyAnalyzer) SetWindow(name string) {
	fa.configMu.Lock()
	defer fa.configMu.Unlock()
	if utils.Contains([]string{HannWindow, HammingWindow, RectangularWindow}, name) {
		fa.windowName = name
	}
}

func (fa *FrequencyAnalyzer) snapshotWindow() string {
	fa.configMu.Lock()
	defer fa.configMu.Unlock()
	return fa.windowName
}

// Analyze drops non-finite samples, tapers the remainder, and transforms it
// into one-sided power bins spanning [0, Nyquist].
func (fa *FrequencyAnalyzer) Analyze(ctx context.Context, samples []float64, samplingRate float64) (*types.SpectrumResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if samplingRate <= 0 {
		return nil, &types.ValidationError{Field: "samplingRate", Reason: "must be > 0"}
	}

	finite := make([]float64, 0, len(samples))
	for _, v := range samples {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 2 {
		return nil, &types.EmptySignalError{Reason: "no finite samples to transform"}
	}

	windowName := fa.snapshotWindow()
	tapered := make([]float64, len(finite))
	copy(tapered, finite)
	switch windowName {
	case HannWindow:
		window.Hann(tapered)
	case HammingWindow:
		window.Hamming(tapered)
	}

	spectrum := fft.FFTReal(tapered)

	n := len(tapered)
	resolution := samplingRate / float64(n)
	binCount := n/2 + 1

	result := &types.SpectrumResult{
		Bins:       make([]types.SpectralBin, binCount),
		Resolution: resolution,
		Window:     windowName,
	}

	dominantIdx := 0
	maxPower := 0.0
	for i := 0; i < binCount; i++ {
		mag := cmplx.Abs(spectrum[i])
		power := mag * mag / float64(n)
		result.Bins[i] = types.SpectralBin{
			Frequency: float64(i) * resolution,
			Power:     power,
		}
		result.TotalPower += power
		// The DC bin carries the baseline, not a rhythm.
		if i > 0 && power > maxPower {
			maxPower = power
			dominantIdx = i
		}
	}
	result.DominantFrequency = float64(dominantIdx) * resolution

	fa.NotifyLoggers(types.DebugLevel, "spectrum computed",
		"component", fa.GetComponentMetadata().ID,
		"bins", binCount, "resolution", resolution, "dominantFrequency", result.DominantFrequency)

	return result, nil
}
