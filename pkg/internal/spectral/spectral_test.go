package spectral_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/pulsewire/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

func sinusoid(freq, fs float64, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	return samples
}

func TestAnalyze_DominantFrequency(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer()
	fs := 125.0

	res, err := fa.Analyze(context.Background(), sinusoid(5, fs, 1250), fs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(res.DominantFrequency-5.0) > 2*res.Resolution {
		t.Errorf("dominant frequency = %v, want ~5 Hz", res.DominantFrequency)
	}
}

func TestAnalyze_BinsSpanZeroToNyquist(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer()
	fs := 125.0
	n := 1000

	res, err := fa.Analyze(context.Background(), sinusoid(3, fs, n), fs)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(res.Bins) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(res.Bins))
	}
	if res.Bins[0].Frequency != 0 {
		t.Errorf("first bin at %v, want 0", res.Bins[0].Frequency)
	}
	last := res.Bins[len(res.Bins)-1].Frequency
	if math.Abs(last-fs/2) > 1e-9 {
		t.Errorf("last bin at %v, want Nyquist %v", last, fs/2)
	}
	for i := 1; i < len(res.Bins); i++ {
		if res.Bins[i].Frequency <= res.Bins[i-1].Frequency {
			t.Fatalf("bin frequencies not increasing at %d", i)
		}
		if res.Bins[i].Power < 0 {
			t.Fatalf("negative power at bin %d", i)
		}
	}
	if math.Abs(res.Resolution-fs/float64(n)) > 1e-12 {
		t.Errorf("resolution = %v, want %v", res.Resolution, fs/float64(n))
	}
}

func TestAnalyze_PureFunction(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer()
	samples := sinusoid(2, 125, 500)

	first, err := fa.Analyze(context.Background(), samples, 125)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	second, err := fa.Analyze(context.Background(), samples, 125)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if first.TotalPower != second.TotalPower || first.DominantFrequency != second.DominantFrequency {
		t.Error("identical input produced different spectra")
	}
}

func TestAnalyze_DropsNaNs(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer()
	samples := sinusoid(5, 125, 1000)
	samples[10] = math.NaN()
	samples[500] = math.Inf(-1)

	res, err := fa.Analyze(context.Background(), samples, 125)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i, b := range res.Bins {
		if math.IsNaN(b.Power) {
			t.Fatalf("NaN power at bin %d", i)
		}
	}
}

func TestAnalyze_WindowSelection(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer(spectral.WithWindow(spectral.HammingWindow))
	res, err := fa.Analyze(context.Background(), sinusoid(5, 125, 500), 125)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Window != spectral.HammingWindow {
		t.Errorf("window = %q, want hamming", res.Window)
	}

	fa.SetWindow("granular") // unknown names are ignored
	res, err = fa.Analyze(context.Background(), sinusoid(5, 125, 500), 125)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Window != spectral.HammingWindow {
		t.Errorf("unknown window accepted: %q", res.Window)
	}
}

func TestAnalyze_ErrorCases(t *testing.T) {
	fa := spectral.NewFrequencyAnalyzer()

	var ese *types.EmptySignalError
	_, err := fa.Analyze(context.Background(), nil, 125)
	if !errors.As(err, &ese) {
		t.Fatalf("expected EmptySignalError, got %v", err)
	}

	nans := []float64{math.NaN(), math.NaN(), math.NaN()}
	_, err = fa.Analyze(context.Background(), nans, 125)
	if !errors.As(err, &ese) {
		t.Fatalf("expected EmptySignalError for all-NaN, got %v", err)
	}

	var ve *types.ValidationError
	_, err = fa.Analyze(context.Background(), sinusoid(5, 125, 100), 0)
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
