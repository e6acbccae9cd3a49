package beatdetect

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/utils"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultHeartRateCeiling bounds physiologically plausible beat spacing;
	// candidates closer than 60/ceiling seconds are treated as artifacts.
	DefaultHeartRateCeiling = 200.0
	// DefaultHeightPercentile is the percentile of the finite samples used as
	// the minimum systolic amplitude.
	DefaultHeightPercentile = 95.0
	// DefaultMinProminenceFraction rejects baseline ripple: a peak must rise
	// at least this fraction of the finite amplitude range above its bases.
	DefaultMinProminenceFraction = 0.10
)

// PeakDetector locates systolic peaks and the diastolic troughs between them.
// Detection is deterministic and side-effect-free; degenerate inputs produce
// an empty PeakSet rather than an error.
type PeakDetector struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	heartRateCeiling      float64
	heightPercentile      float64
	minProminenceFraction float64
	configMu              sync.Mutex

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewPeakDetector constructs a PeakDetector with optional configuration.
func NewPeakDetector(options ...types.Option[types.PeakDetector]) types.PeakDetector {
	pd := &PeakDetector{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PEAK_DETECTOR",
		},
		heartRateCeiling:      DefaultHeartRateCeiling,
		heightPercentile:      DefaultHeightPercentile,
		minProminenceFraction: DefaultMinProminenceFraction,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(pd)
	}

	return pd
}

// GetComponentMetadata returns the detector metadata.
func (pd *PeakDetector) GetComponentMetadata() types.ComponentMetadata {
	pd.metadataMu.Lock()
	defer pd.metadataMu.Unlock()
	return pd.componentMetadata
}

// SetComponentMetadata overrides the detector name and id.
func (pd *PeakDetector) SetComponentMetadata(name string, id string) {
	pd.metadataMu.Lock()
	defer pd.metadataMu.Unlock()
	if name != "" {
		pd.componentMetadata.Name = name
	}
	if id != "" {
		pd.componentMetadata.ID = id
	}
}

// SetHeartRateCeiling sets the maximum plausible heart rate in bpm.
func (pd *PeakDetector) SetHeartRateCeiling(bpm float64) {
	pd.configMu.Lock()
	defer pd.configMu.Unlock()
	if bpm > 0 {
		pd.heartRateCeiling = bpm
	}
}

// SetHeightPercentile sets the amplitude-threshold percentile.
func (pd *PeakDetector) SetHeightPercentile(p float64) {
	pd.configMu.Lock()
	defer pd.configMu.Unlock()
	if p >= 0 && p <= 100 {
		pd.heightPercentile = p
	}
}

// SetMinProminenceFraction sets the prominence floor as a fraction of range.
func (pd *PeakDetector) SetMinProminenceFraction(f float64) {
	pd.configMu.Lock()
	defer pd.configMu.Unlock()
	if f >= 0 {
		pd.minProminenceFraction = f
	}
}

func (pd *PeakDetector) snapshotConfig() (float64, float64, float64) {
	pd.configMu.Lock()
	defer pd.configMu.Unlock()
	return pd.heartRateCeiling, pd.heightPercentile, pd.minProminenceFraction
}

// Detect scans samples for systolic peaks. Candidates must clear the
// amplitude percentile and the prominence floor; survivors closer together
// than the heart-rate ceiling allows are resolved by keeping the more
// prominent candidate, with exact ties going to the earlier index.
func (pd *PeakDetector) Detect(ctx context.Context, samples []float64, samplingRate float64) (*types.PeakSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if samplingRate <= 0 {
		return nil, &types.ValidationError{Field: "samplingRate", Reason: "must be > 0"}
	}

	empty := &types.PeakSet{SamplingRate: samplingRate}
	if len(samples) < 3 {
		return empty, nil
	}

	finite := finiteValues(samples)
	if len(finite) < 3 {
		pd.NotifyLoggers(types.DebugLevel, "peak detection on degenerate input",
			"component", pd.GetComponentMetadata().ID, "finiteSamples", len(finite))
		return empty, nil
	}

	sort.Float64s(finite)
	lo, hi := finite[0], finite[len(finite)-1]
	if hi == lo {
		// Flat signal carries no beats.
		return empty, nil
	}

	ceiling, heightPct, promFraction := pd.snapshotConfig()
	height := stat.Quantile(heightPct/100.0, stat.Empirical, finite, nil)
	minProminence := promFraction * (hi - lo)
	minDistance := int(math.Round(samplingRate * 60.0 / ceiling))
	if minDistance < 1 {
		minDistance = 1
	}

	candidates := localMaxima(samples)
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if samples[c.index] < height {
			continue
		}
		c.prominence = prominence(samples, c.index)
		if c.prominence < minProminence {
			continue
		}
		kept = append(kept, c)
	}

	selected := enforceMinDistance(kept, minDistance)

	peaks := make([]types.Peak, 0, len(selected))
	for _, idx := range selected {
		peaks = append(peaks, types.Peak{
			Index:     idx,
			Time:      float64(idx) / samplingRate,
			Amplitude: samples[idx],
		})
	}

	set := &types.PeakSet{
		Peaks:        peaks,
		Troughs:      troughsBetween(samples, peaks, samplingRate),
		SamplingRate: samplingRate,
	}

	pd.NotifyLoggers(types.DebugLevel, "peak detection complete",
		"component", pd.GetComponentMetadata().ID,
		"candidates", len(candidates), "peaks", len(set.Peaks), "troughs", len(set.Troughs))

	return set, nil
}

func finiteValues(samples []float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, v := range samples {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// troughsBetween finds the diastolic minimum strictly between each pair of
// consecutive peaks. Gaps with no finite samples contribute no trough.
func troughsBetween(samples []float64, peaks []types.Peak, samplingRate float64) []types.Peak {
	if len(peaks) < 2 {
		return nil
	}
	troughs := make([]types.Peak, 0, len(peaks)-1)
	for i := 0; i+1 < len(peaks); i++ {
		lowIdx := -1
		low := math.Inf(1)
		for j := peaks[i].Index + 1; j < peaks[i+1].Index; j++ {
			v := samples[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < low {
				low, lowIdx = v, j
			}
		}
		if lowIdx < 0 {
			continue
		}
		troughs = append(troughs, types.Peak{
			Index:     lowIdx,
			Time:      float64(lowIdx) / samplingRate,
			Amplitude: low,
		})
	}
	return troughs
}
