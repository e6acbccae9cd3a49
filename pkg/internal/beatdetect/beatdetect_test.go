package beatdetect_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/pulsewire/pkg/internal/beatdetect"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/wavegen"
)

func TestDetect_PulseTrainSpacing(t *testing.T) {
	gen := wavegen.NewGenerator(125, wavegen.WithHeartRate(75))
	rec := gen.Record(20)
	want := gen.BeatPeriod()

	pd := beatdetect.NewPeakDetector()
	set, err := pd.Detect(context.Background(), rec.Samples, rec.SamplingRate)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(set.Peaks) < 20 {
		t.Fatalf("expected ~25 peaks over 20s at 75 bpm, got %d", len(set.Peaks))
	}

	for i := 1; i < len(set.Peaks); i++ {
		gap := set.Peaks[i].Time - set.Peaks[i-1].Time
		if math.Abs(gap-want) > 0.05 {
			t.Errorf("peak gap %d = %vs, want %vs +/- 0.05", i, gap, want)
		}
	}
}

func TestDetect_IndicesStrictlyIncreasingAndInBounds(t *testing.T) {
	rec := wavegen.NewGenerator(125, wavegen.WithNoise(1.5), wavegen.WithSeed(3)).Record(15)

	pd := beatdetect.NewPeakDetector()
	set, err := pd.Detect(context.Background(), rec.Samples, rec.SamplingRate)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for i, p := range set.Peaks {
		if p.Index < 0 || p.Index >= len(rec.Samples) {
			t.Fatalf("peak %d index out of bounds: %d", i, p.Index)
		}
		if i > 0 && p.Index <= set.Peaks[i-1].Index {
			t.Fatalf("indices not strictly increasing at %d", i)
		}
		if math.Abs(p.Time-float64(p.Index)/rec.SamplingRate) > 1e-12 {
			t.Errorf("timestamp inconsistent at %d", i)
		}
	}
}

func TestDetect_MinDistanceRejectsDoubleCounting(t *testing.T) {
	fs := 125.0
	n := int(fs * 10)
	samples := make([]float64, n)
	// A beat every second with a slightly smaller echo 100 ms after it; the
	// echo sits inside the 200 bpm window and must be suppressed.
	for s := 0; s < 10; s++ {
		base := int(float64(s)*fs) + 20
		echo := base + int(0.1*fs)
		if echo < n-1 {
			samples[base] = 100
			samples[echo] = 95
		}
	}

	pd := beatdetect.NewPeakDetector()
	set, err := pd.Detect(context.Background(), samples, fs)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for i := 1; i < len(set.Peaks); i++ {
		gap := set.Peaks[i].Time - set.Peaks[i-1].Time
		if gap < 60.0/200.0 {
			t.Fatalf("peaks %d and %d closer than the 200 bpm floor: %vs", i-1, i, gap)
		}
	}
	for _, p := range set.Peaks {
		if p.Amplitude != 100 {
			t.Errorf("kept the less prominent echo at index %d", p.Index)
		}
	}
}

func TestDetect_TieBreakPrefersEarlierIndex(t *testing.T) {
	fs := 100.0
	samples := make([]float64, 200)
	// Two identical spikes 10 samples apart, well inside the distance window.
	samples[90] = 50
	samples[100] = 50

	pd := beatdetect.NewPeakDetector(beatdetect.WithHeightPercentile(90))
	set, err := pd.Detect(context.Background(), samples, fs)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(set.Peaks) != 1 {
		t.Fatalf("expected 1 peak after suppression, got %d", len(set.Peaks))
	}
	if set.Peaks[0].Index != 90 {
		t.Errorf("tie resolved to index %d, want the earlier 90", set.Peaks[0].Index)
	}
}

func TestDetect_DegenerateInputs(t *testing.T) {
	pd := beatdetect.NewPeakDetector()
	ctx := context.Background()

	flat := make([]float64, 1000)
	for i := range flat {
		flat[i] = 42
	}
	nans := make([]float64, 1000)
	for i := range nans {
		nans[i] = math.NaN()
	}

	cases := []struct {
		name    string
		samples []float64
	}{
		{"empty", nil},
		{"flat", flat},
		{"all NaN", nans},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := pd.Detect(ctx, tc.samples, 125)
			if err != nil {
				t.Fatalf("expected empty PeakSet, got error: %v", err)
			}
			if len(set.Peaks) != 0 || len(set.Troughs) != 0 {
				t.Errorf("expected empty PeakSet, got %d peaks", len(set.Peaks))
			}
		})
	}
}

func TestDetect_BadSamplingRate(t *testing.T) {
	pd := beatdetect.NewPeakDetector()
	_, err := pd.Detect(context.Background(), []float64{1, 2, 1}, 0)
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDetect_TroughsBetweenPeaks(t *testing.T) {
	rec := wavegen.NewGenerator(125, wavegen.WithPressures(120, 80)).Record(10)

	pd := beatdetect.NewPeakDetector()
	set, err := pd.Detect(context.Background(), rec.Samples, rec.SamplingRate)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(set.Peaks) < 2 {
		t.Fatalf("expected multiple peaks, got %d", len(set.Peaks))
	}
	if len(set.Troughs) != len(set.Peaks)-1 {
		t.Fatalf("expected %d troughs, got %d", len(set.Peaks)-1, len(set.Troughs))
	}
	for i, tr := range set.Troughs {
		if tr.Index <= set.Peaks[i].Index || tr.Index >= set.Peaks[i+1].Index {
			t.Errorf("trough %d at %d not between its peaks", i, tr.Index)
		}
		if math.Abs(tr.Amplitude-80) > 1.0 {
			t.Errorf("trough %d amplitude %v, want ~80", i, tr.Amplitude)
		}
	}
}

func TestDetect_Deterministic(t *testing.T) {
	rec := wavegen.NewGenerator(125, wavegen.WithNoise(2), wavegen.WithSeed(11)).Record(12)
	pd := beatdetect.NewPeakDetector()

	first, err := pd.Detect(context.Background(), rec.Samples, rec.SamplingRate)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	second, err := pd.Detect(context.Background(), rec.Samples, rec.SamplingRate)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(first.Peaks) != len(second.Peaks) {
		t.Fatalf("peak counts differ across runs: %d vs %d", len(first.Peaks), len(second.Peaks))
	}
	for i := range first.Peaks {
		if first.Peaks[i] != second.Peaks[i] {
			t.Fatalf("peak %d differs across runs", i)
		}
	}
}
