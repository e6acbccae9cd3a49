package vitals

import (
	"context"
	"math"
	"sync"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/utils"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultSQIReliableScore is the minimum SQI for the reliability flag.
	DefaultSQIReliableScore = 0.5
	// DefaultSQIReliableBeats is the minimum beat count for the reliability flag.
	DefaultSQIReliableBeats = 8
)

// VitalsCalculator derives heart rate, variability, pulse pressure, and a
// signal-quality index from a PeakSet. Metrics that cannot be computed are
// reported as explicitly undefined with a reason code; the calculator never
// substitutes zeros.
type VitalsCalculator struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	sqiReliableScore float64
	sqiReliableBeats int
	configMu         sync.Mutex

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewVitalsCalculator constructs a VitalsCalculator with optional configuration.
func NewVitalsCalculator(options ...types.Option[types.VitalsCalculator]) types.VitalsCalculator {
	vc := &VitalsCalculator{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "VITALS_CALCULATOR",
		},
		sqiReliableScore: DefaultSQIReliableScore,
		sqiReliableBeats: DefaultSQIReliableBeats,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(vc)
	}

	return vc
}

// GetComponentMetadata returns the calculator metadata.
func (vc *VitalsCalculator) GetComponentMetadata() types.ComponentMetadata {
	vc.metadataMu.Lock()
	defer vc.metadataMu.Unlock()
	return vc.componentMetadata
}

// SetComponentMetadata overrides the calculator name and id.
func (vc *VitalsCalculator) SetComponentMetadata(name string, id string) {
	vc.metadataMu.Lock()
	defer vc.metadataMu.Unlock()
	if name != "" {
		vc.componentMetadata.Name = name
	}
	if id != "" {
		vc.componentMetadata.ID = id
	}
}

// SetSQIReliability sets the thresholds behind the SQIReliable flag.
func (vc *VitalsCalculator) SetSQIReliability(minScore float64, minBeats int) {
	vc.configMu.Lock()
	defer vc.configMu.Unlock()
	if minScore >= 0 && minScore <= 1 {
		vc.sqiReliableScore = minScore
	}
	if minBeats > 0 {
		vc.sqiReliableBeats = minBeats
	}
}

func (vc *VitalsCalculator) snapshotConfig() (float64, int) {
	vc.configMu.Lock()
	defer vc.configMu.Unlock()
	return vc.sqiReliableScore, vc.sqiReliableBeats
}

// Compute derives all metrics from the peak set.
func (vc *VitalsCalculator) Compute(ctx context.Context, peaks *types.PeakSet) (*types.VitalsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if peaks == nil {
		return nil, &types.ValidationError{Field: "peaks", Reason: "must not be nil"}
	}
	if peaks.SamplingRate <= 0 {
		return nil, &types.ValidationError{Field: "samplingRate", Reason: "must be > 0"}
	}

	result := &types.VitalsResult{BeatCount: len(peaks.Peaks)}
	result.Intervals = interBeatIntervals(peaks.Peaks)

	result.HeartRate = heartRate(result.Intervals, len(peaks.Peaks))
	result.SDNN, result.RMSSD = variability(result.Intervals, len(peaks.Peaks))
	result.PulsePressures, result.PulsePressure = pulsePressure(peaks)

	minScore, minBeats := vc.snapshotConfig()
	result.SQI = qualityIndex(result.Intervals, len(peaks.Peaks))
	result.SQIReliable = result.SQI.Valid &&
		result.SQI.Value >= minScore &&
		result.BeatCount >= minBeats

	vc.NotifyLoggers(types.DebugLevel, "vitals computed",
		"component", vc.GetComponentMetadata().ID,
		"beats", result.BeatCount,
		"hrValid", result.HeartRate.Valid,
		"sqiReliable", result.SQIReliable)

	return result, nil
}

// interBeatIntervals returns successive peak-time differences in seconds.
func interBeatIntervals(peaks []types.Peak) []float64 {
	if len(peaks) < 2 {
		return nil
	}
	intervals := make([]float64, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		intervals[i-1] = peaks[i].Time - peaks[i-1].Time
	}
	return intervals
}

func heartRate(intervals []float64, beatCount int) types.Metric {
	if beatCount < 2 {
		return types.UndefinedMetric(types.ReasonTooFewPeaks)
	}
	mean := stat.Mean(intervals, nil)
	if mean <= 0 {
		return types.UndefinedMetric(types.ReasonZeroMeanInterval)
	}
	return types.DefinedMetric(60.0 / mean)
}

// variability returns SDNN and RMSSD, both in milliseconds. Both need at
// least two intervals: SDNN for a meaningful spread, RMSSD because it is
// built on successive interval differences.
func variability(intervals []float64, beatCount int) (types.Metric, types.Metric) {
	if beatCount < 3 {
		reason := types.ReasonTooFewPeaks
		if beatCount == 2 {
			reason = types.ReasonTooFewIntervals
		}
		return types.UndefinedMetric(reason), types.UndefinedMetric(reason)
	}

	sdnn := types.DefinedMetric(stat.StdDev(intervals, nil) * 1000.0)

	sumSq := 0.0
	for i := 1; i < len(intervals); i++ {
		d := intervals[i] - intervals[i-1]
		sumSq += d * d
	}
	rmssd := types.DefinedMetric(math.Sqrt(sumSq/float64(len(intervals)-1)) * 1000.0)

	return sdnn, rmssd
}

// pulsePressure pairs each systolic peak with the diastolic trough that
// follows it, before the next peak. Beats with no matched trough are
// excluded from the aggregate rather than counted as zero.
func pulsePressure(peaks *types.PeakSet) ([]float64, types.Metric) {
	if len(peaks.Peaks) < 2 || len(peaks.Troughs) == 0 {
		return nil, types.UndefinedMetric(types.ReasonNoMatchedTroughs)
	}

	perBeat := make([]float64, 0, len(peaks.Troughs))
	ti := 0
	for i := 0; i+1 < len(peaks.Peaks); i++ {
		lo, hi := peaks.Peaks[i].Index, peaks.Peaks[i+1].Index
		for ti < len(peaks.Troughs) && peaks.Troughs[ti].Index <= lo {
			ti++
		}
		if ti >= len(peaks.Troughs) || peaks.Troughs[ti].Index >= hi {
			continue // no trough inside this beat
		}
		perBeat = append(perBeat, peaks.Peaks[i].Amplitude-peaks.Troughs[ti].Amplitude)
	}

	if len(perBeat) == 0 {
		return nil, types.UndefinedMetric(types.ReasonNoMatchedTroughs)
	}
	return perBeat, types.DefinedMetric(stat.Mean(perBeat, nil))
}

// qualityIndex scores beat periodicity as 1 - cv(intervals), clamped to
// [0,1]: perfectly regular beats score 1, beats whose spread rivals their
// mean score 0. Deterministic for identical inputs.
func qualityIndex(intervals []float64, beatCount int) types.Metric {
	if beatCount < 3 {
		return types.UndefinedMetric(types.ReasonTooFewPeaks)
	}
	mean := stat.Mean(intervals, nil)
	if mean <= 0 {
		return types.UndefinedMetric(types.ReasonZeroMeanInterval)
	}
	cv := stat.StdDev(intervals, nil) / mean
	score := 1.0 - cv
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return types.DefinedMetric(score)
}
