package vitals_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/vitals"
)

func peakSetFromTimes(times []float64, fs float64, amplitude float64) *types.PeakSet {
	set := &types.PeakSet{SamplingRate: fs}
	for _, t := range times {
		idx := int(math.Round(t * fs))
		set.Peaks = append(set.Peaks, types.Peak{Index: idx, Time: float64(idx) / fs, Amplitude: amplitude})
	}
	for i := 0; i+1 < len(set.Peaks); i++ {
		mid := (set.Peaks[i].Index + set.Peaks[i+1].Index) / 2
		set.Troughs = append(set.Troughs, types.Peak{Index: mid, Time: float64(mid) / fs, Amplitude: amplitude - 40})
	}
	return set
}

func periodicTimes(period float64, count int) []float64 {
	times := make([]float64, count)
	for i := range times {
		times[i] = 0.5 + float64(i)*period
	}
	return times
}

func TestCompute_HeartRateFromKnownPeriod(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 20), 1000, 120)

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !res.HeartRate.Valid {
		t.Fatalf("expected defined HR, got reason %q", res.HeartRate.Reason)
	}
	if math.Abs(res.HeartRate.Value-75.0) > 0.5 {
		t.Errorf("HR = %v, want ~75", res.HeartRate.Value)
	}
	if res.BeatCount != 20 {
		t.Errorf("BeatCount = %d", res.BeatCount)
	}
	if len(res.Intervals) != 19 {
		t.Errorf("expected 19 intervals, got %d", len(res.Intervals))
	}
}

func TestCompute_UndefinedWithTooFewPeaks(t *testing.T) {
	vc := vitals.NewVitalsCalculator()

	res, err := vc.Compute(context.Background(), peakSetFromTimes([]float64{1.0}, 125, 120))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if res.HeartRate.Valid {
		t.Error("HR should be undefined with one peak")
	}
	if res.HeartRate.Reason != types.ReasonTooFewPeaks {
		t.Errorf("HR reason = %q", res.HeartRate.Reason)
	}
	if !math.IsNaN(res.HeartRate.Value) {
		t.Errorf("undefined HR value should be NaN, got %v", res.HeartRate.Value)
	}
	if res.SDNN.Valid || res.RMSSD.Valid || res.SQI.Valid {
		t.Error("variability and SQI should be undefined with one peak")
	}
	if res.SQIReliable {
		t.Error("SQIReliable must be false when SQI is undefined")
	}
}

func TestCompute_TwoPeaksDefinesHRButNotHRV(t *testing.T) {
	vc := vitals.NewVitalsCalculator()

	res, err := vc.Compute(context.Background(), peakSetFromTimes([]float64{1.0, 1.8}, 125, 120))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !res.HeartRate.Valid {
		t.Error("HR should be defined with two peaks")
	}
	if res.SDNN.Valid || res.RMSSD.Valid {
		t.Error("HRV should be undefined with a single interval")
	}
	if res.SDNN.Reason != types.ReasonTooFewIntervals {
		t.Errorf("SDNN reason = %q", res.SDNN.Reason)
	}
}

func TestCompute_HRVZeroOnPerfectPeriodicity(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 30), 1000, 120)

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !res.SDNN.Valid || !res.RMSSD.Valid {
		t.Fatal("expected defined HRV")
	}
	if res.SDNN.Value > 1.5 {
		t.Errorf("SDNN on periodic train = %vms, want ~0", res.SDNN.Value)
	}
	if res.RMSSD.Value > 2.5 {
		t.Errorf("RMSSD on periodic train = %vms, want ~0", res.RMSSD.Value)
	}
}

func TestCompute_HRVMonotoneInJitter(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	fs := 1000.0

	jittered := func(jitter float64) *types.PeakSet {
		times := make([]float64, 40)
		for i := range times {
			sign := 1.0
			if i%2 == 1 {
				sign = -1.0
			}
			times[i] = 0.5 + float64(i)*0.8 + sign*jitter
		}
		return peakSetFromTimes(times, fs, 120)
	}

	var prev float64 = -1
	for _, jitter := range []float64{0.005, 0.02, 0.05, 0.1} {
		res, err := vc.Compute(context.Background(), jittered(jitter))
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if !res.RMSSD.Valid {
			t.Fatal("expected defined RMSSD")
		}
		if res.RMSSD.Value <= prev {
			t.Errorf("RMSSD not monotone: %v after %v at jitter %v", res.RMSSD.Value, prev, jitter)
		}
		prev = res.RMSSD.Value
	}
}

func TestCompute_PulsePressurePerBeat(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 10), 1000, 120)

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !res.PulsePressure.Valid {
		t.Fatalf("expected defined PP, reason %q", res.PulsePressure.Reason)
	}
	if len(res.PulsePressures) != 9 {
		t.Fatalf("expected 9 matched beats, got %d", len(res.PulsePressures))
	}
	for i, pp := range res.PulsePressures {
		if math.Abs(pp-40.0) > 1e-9 {
			t.Errorf("beat %d PP = %v, want 40", i, pp)
		}
	}
	if math.Abs(res.PulsePressure.Value-40.0) > 1e-9 {
		t.Errorf("aggregate PP = %v, want 40", res.PulsePressure.Value)
	}
}

func TestCompute_PulsePressureExcludesUnmatchedBeats(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 5), 1000, 120)
	// Drop the second trough; the corresponding beat must be excluded, not zeroed.
	set.Troughs = append(set.Troughs[:1], set.Troughs[2:]...)

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(res.PulsePressures) != 3 {
		t.Fatalf("expected 3 matched beats, got %d", len(res.PulsePressures))
	}
	if math.Abs(res.PulsePressure.Value-40.0) > 1e-9 {
		t.Errorf("aggregate PP = %v, want 40", res.PulsePressure.Value)
	}
}

func TestCompute_NoTroughsMeansUndefinedPP(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 5), 1000, 120)
	set.Troughs = nil

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if res.PulsePressure.Valid {
		t.Error("PP should be undefined without troughs")
	}
	if res.PulsePressure.Reason != types.ReasonNoMatchedTroughs {
		t.Errorf("PP reason = %q", res.PulsePressure.Reason)
	}
}

func TestCompute_SQIDeterministicAndBounded(t *testing.T) {
	vc := vitals.NewVitalsCalculator()
	set := peakSetFromTimes(periodicTimes(0.8, 15), 1000, 120)

	first, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if first.SQI != second.SQI {
		t.Error("SQI differs across identical runs")
	}
	if !first.SQI.Valid || first.SQI.Value < 0 || first.SQI.Value > 1 {
		t.Errorf("SQI out of bounds: %+v", first.SQI)
	}
	if first.SQI.Value < 0.95 {
		t.Errorf("SQI on periodic train = %v, want near 1", first.SQI.Value)
	}
	if !first.SQIReliable {
		t.Error("expected reliable SQI for 15 regular beats")
	}
}

func TestCompute_SQIReliabilityThresholds(t *testing.T) {
	vc := vitals.NewVitalsCalculator(vitals.WithSQIReliability(0.5, 20))
	set := peakSetFromTimes(periodicTimes(0.8, 15), 1000, 120)

	res, err := vc.Compute(context.Background(), set)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if res.SQIReliable {
		t.Error("15 beats should not satisfy a 20-beat reliability floor")
	}
}

func TestCompute_InputValidation(t *testing.T) {
	vc := vitals.NewVitalsCalculator()

	var ve *types.ValidationError
	_, err := vc.Compute(context.Background(), nil)
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for nil peaks, got %v", err)
	}
	_, err = vc.Compute(context.Background(), &types.PeakSet{})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for zero sampling rate, got %v", err)
	}
}
