package analyzer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joeydtaylor/pulsewire/pkg/internal/analyzer"
	"github.com/joeydtaylor/pulsewire/pkg/internal/bandpass"
	"github.com/joeydtaylor/pulsewire/pkg/internal/beatdetect"
	"github.com/joeydtaylor/pulsewire/pkg/internal/spectral"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/vitals"
	"github.com/joeydtaylor/pulsewire/pkg/internal/wavegen"
)

func newFullAnalyzer() types.Analyzer {
	return analyzer.NewAnalyzer(
		analyzer.WithFilterEngine(bandpass.NewFilterEngine()),
		analyzer.WithPeakDetector(beatdetect.NewPeakDetector()),
		analyzer.WithVitalsCalculator(vitals.NewVitalsCalculator()),
		analyzer.WithFrequencyAnalyzer(spectral.NewFrequencyAnalyzer()),
	)
}

func testRecord() *types.WaveformRecord {
	return wavegen.NewGenerator(125, wavegen.WithHeartRate(75)).Record(30)
}

func TestAnalyze_FullPipeline(t *testing.T) {
	a := newFullAnalyzer()
	spec := types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	res := a.Analyze(context.Background(), testRecord(), spec)
	if res == nil {
		t.Fatal("Analyze returned nil result")
	}
	if res.ID == "" {
		t.Error("result has no id")
	}

	for _, name := range []types.StageName{
		types.StageFilter, types.StagePeaks, types.StageVitals,
		types.StageRawPeaks, types.StageRawVitals,
		types.StageSpectrum, types.StageRawSpectrum,
	} {
		if !res.StageDone(name) {
			t.Errorf("stage %s = %s (%s)", name, res.Stages[name].State, res.Stages[name].Error)
		}
	}

	if res.Filtered == nil || len(res.Filtered.Samples) != len(res.Record.Samples) {
		t.Error("missing or truncated filtered waveform")
	}
	if res.RawVitals == nil || !res.RawVitals.HeartRate.Valid {
		t.Fatal("expected defined raw heart rate")
	}
	if hr := res.RawVitals.HeartRate.Value; hr < 65 || hr > 85 {
		t.Errorf("raw HR = %v, want ~75", hr)
	}
	if res.Spectrum == nil || res.RawSpectrum == nil {
		t.Error("expected both spectra")
	}
	if res.CompletedAt.Before(res.StartedAt) {
		t.Error("CompletedAt precedes StartedAt")
	}
}

func TestAnalyze_FilterFailureLeavesRawBranchAlive(t *testing.T) {
	a := newFullAnalyzer()
	badSpec := types.FilterSpec{LowCutoff: 10, HighCutoff: 0.5, Order: 2}

	res := a.Analyze(context.Background(), testRecord(), badSpec)

	if !res.StageFailed(types.StageFilter) {
		t.Fatalf("filter stage = %s, want failed", res.Stages[types.StageFilter].State)
	}
	if res.Stages[types.StageFilter].Error == "" {
		t.Error("failed stage should carry an error string")
	}
	for _, name := range []types.StageName{types.StagePeaks, types.StageVitals, types.StageSpectrum} {
		if res.Stages[name].State != types.StageSkipped {
			t.Errorf("stage %s = %s, want skipped", name, res.Stages[name].State)
		}
	}
	for _, name := range []types.StageName{types.StageRawPeaks, types.StageRawVitals, types.StageRawSpectrum} {
		if !res.StageDone(name) {
			t.Errorf("stage %s = %s, want done", name, res.Stages[name].State)
		}
	}
	if res.Filtered != nil {
		t.Error("failed filter must not publish a filtered waveform")
	}
	if res.RawVitals == nil || !res.RawVitals.HeartRate.Valid {
		t.Error("raw vitals should still be computed")
	}
}

func TestAnalyze_PeakFailureDoesNotBlockSpectra(t *testing.T) {
	a := analyzer.NewAnalyzer(
		analyzer.WithFilterEngine(bandpass.NewFilterEngine()),
		analyzer.WithVitalsCalculator(vitals.NewVitalsCalculator()),
		analyzer.WithFrequencyAnalyzer(spectral.NewFrequencyAnalyzer()),
	)
	spec := types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	res := a.Analyze(context.Background(), testRecord(), spec)

	if !res.StageFailed(types.StagePeaks) || !res.StageFailed(types.StageRawPeaks) {
		t.Fatal("expected peak stages to fail without a detector")
	}
	for _, name := range []types.StageName{types.StageVitals, types.StageRawVitals} {
		if res.Stages[name].State != types.StageSkipped {
			t.Errorf("stage %s = %s, want skipped", name, res.Stages[name].State)
		}
	}
	for _, name := range []types.StageName{types.StageFilter, types.StageSpectrum, types.StageRawSpectrum} {
		if !res.StageDone(name) {
			t.Errorf("stage %s = %s, want done", name, res.Stages[name].State)
		}
	}
}

func TestAnalyze_NilRecord(t *testing.T) {
	a := newFullAnalyzer()

	res := a.Analyze(context.Background(), nil, types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2})
	if res == nil {
		t.Fatal("nil record must still yield a result")
	}
	for name, status := range res.Stages {
		if status.State != types.StageFailed {
			t.Errorf("stage %s = %s, want failed", name, status.State)
		}
		if status.Error == "" {
			t.Errorf("stage %s carries no error string", name)
		}
	}
	var ese *types.EmptySignalError
	if !errors.As(res.Stages[types.StageFilter].Err, &ese) {
		t.Errorf("expected EmptySignalError, got %v", res.Stages[types.StageFilter].Err)
	}
	if res.CompletedAt.Before(res.StartedAt) {
		t.Error("CompletedAt precedes StartedAt")
	}
}

func TestAnalyze_FreshResultPerRun(t *testing.T) {
	a := newFullAnalyzer()
	record := testRecord()
	spec := types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	first := a.Analyze(context.Background(), record, spec)
	second := a.Analyze(context.Background(), record, spec)
	if first.ID == second.ID {
		t.Error("re-running must produce a fresh result id")
	}
}

func TestAnalyze_CanceledContext(t *testing.T) {
	a := newFullAnalyzer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := a.Analyze(ctx, testRecord(), types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2})
	if res == nil {
		t.Fatal("canceled analysis must still return a result")
	}
	for name, status := range res.Stages {
		if status.State != types.StageCanceled {
			t.Errorf("stage %s = %s, want canceled", name, status.State)
		}
	}
}

func receiveResult(t *testing.T, s types.Session) *types.AnalysisResult {
	t.Helper()
	select {
	case res, ok := <-s.Results():
		if !ok {
			t.Fatal("results channel closed early")
		}
		return res
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a result")
	}
	return nil
}

func TestSession_DeliversCompletedAnalyses(t *testing.T) {
	s := analyzer.NewSession(newFullAnalyzer())
	defer s.Close()
	spec := types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	s.Submit(testRecord(), spec)
	first := receiveResult(t, s)
	if !first.StageDone(types.StageVitals) {
		t.Errorf("vitals stage = %s", first.Stages[types.StageVitals].State)
	}

	s.Submit(testRecord(), spec)
	second := receiveResult(t, s)
	if second.ID == first.ID {
		t.Error("second submission must yield a fresh result")
	}
}

func TestSession_LastRequestWins(t *testing.T) {
	s := analyzer.NewSession(newFullAnalyzer())
	defer s.Close()
	spec := types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	first := testRecord()
	second := wavegen.NewGenerator(125, wavegen.WithHeartRate(90)).Record(30)

	s.Submit(first, spec)
	s.Submit(second, spec)

	// Drain until the channel goes quiet; the last delivery must belong to
	// the superseding request.
	var last *types.AnalysisResult
	deadline := time.After(10 * time.Second)
	for {
		select {
		case res := <-s.Results():
			last = res
			continue
		case <-time.After(500 * time.Millisecond):
		case <-deadline:
		}
		break
	}
	if last == nil {
		t.Fatal("no result delivered")
	}
	if last.Record != second {
		t.Error("superseded request's result was delivered last")
	}
}

func TestSession_CloseClosesResults(t *testing.T) {
	s := analyzer.NewSession(newFullAnalyzer())
	s.Submit(testRecord(), types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2})
	s.Close()

	// Submits after Close are ignored.
	s.Submit(testRecord(), types.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2})

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-s.Results():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("results channel never closed")
		}
	}
}
