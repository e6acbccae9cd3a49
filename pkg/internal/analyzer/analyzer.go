package analyzer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
	"github.com/joeydtaylor/pulsewire/pkg/internal/utils"
)

// Analyzer wires the filter engine, peak detector, vitals calculator, and
// frequency analyzer into one pipeline run. The beat branch (filter, peaks,
// vitals), the raw branch (raw-peaks, raw-vitals), and the raw spectrum run
// concurrently; a failure in one branch never blocks the others, so a result
// always carries whatever could still be computed.
type Analyzer struct {
	componentMetadata types.ComponentMetadata
	metadataMu        sync.Mutex

	filterEngine types.FilterEngine
	peakDetector types.PeakDetector
	vitalsCalc   types.VitalsCalculator
	freqAnalyzer types.FrequencyAnalyzer
	componentsMu sync.Mutex

	loggers   []types.Logger
	loggersMu sync.Mutex
}

// NewAnalyzer constructs an Analyzer with optional configuration.
func NewAnalyzer(options ...types.Option[types.Analyzer]) types.Analyzer {
	a := &Analyzer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ANALYZER",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}

	return a
}

// GetComponentMetadata returns the analyzer metadata.
func (a *Analyzer) GetComponentMetadata() types.ComponentMetadata {
	a.metadataMu.Lock()
	defer a.metadataMu.Unlock()
	return a.componentMetadata
}

// SetComponentMetadata overrides the analyzer name and id.
func (a *Analyzer) SetComponentMetadata(name string, id string) {
	a.metadataMu.Lock()
	defer a.metadataMu.Unlock()
	if name != "" {
		a.componentMetadata.Name = name
	}
	if id != "" {
		a.componentMetadata.ID = id
	}
}

// ConnectFilterEngine attaches the band-pass stage.
func (a *Analyzer) ConnectFilterEngine(fe types.FilterEngine) {
	a.componentsMu.Lock()
	defer a.componentsMu.Unlock()
	a.filterEngine = fe
}

// ConnectPeakDetector attaches the systolic peak stage.
func (a *Analyzer) ConnectPeakDetector(pd types.PeakDetector) {
	a.componentsMu.Lock()
	defer a.componentsMu.Unlock()
	a.peakDetector = pd
}

// ConnectVitalsCalculator attaches the metrics stage.
func (a *Analyzer) ConnectVitalsCalculator(vc types.VitalsCalculator) {
	a.componentsMu.Lock()
	defer a.componentsMu.Unlock()
	a.vitalsCalc = vc
}

// ConnectFrequencyAnalyzer attaches the spectrum stage.
func (a *Analyzer) ConnectFrequencyAnalyzer(fa types.FrequencyAnalyzer) {
	a.componentsMu.Lock()
	defer a.componentsMu.Unlock()
	a.freqAnalyzer = fa
}

func (a *Analyzer) snapshotComponents() (types.FilterEngine, types.PeakDetector, types.VitalsCalculator, types.FrequencyAnalyzer) {
	a.componentsMu.Lock()
	defer a.componentsMu.Unlock()
	return a.filterEngine, a.peakDetector, a.vitalsCalc, a.freqAnalyzer
}

// run tracks the stage map of one in-flight analysis. All stage transitions
// funnel through it so concurrent branches never race on the result.
type run struct {
	result *types.AnalysisResult
	mu     sync.Mutex
}

func (r *run) setState(name types.StageName, state types.StageState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Stages[name] = types.StageStatus{State: state}
}

func (r *run) fail(name types.StageName, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Stages[name] = types.StageStatus{State: types.StageFailed, Err: err, Error: err.Error()}
}

// finish classifies a stage outcome: nil means done, a context error means the
// request was canceled mid-run, anything else is a stage failure.
func (r *run) finish(name types.StageName, err error) bool {
	if err == nil {
		r.setState(name, types.StageDone)
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.setState(name, types.StageCanceled)
		return false
	}
	r.fail(name, err)
	return false
}

// skipOrCancel resolves stages that never ran because an upstream stage did
// not succeed.
func (r *run) skipOrCancel(ctx context.Context, names ...types.StageName) {
	state := types.StageSkipped
	if ctx.Err() != nil {
		state = types.StageCanceled
	}
	for _, name := range names {
		r.setState(name, state)
	}
}

// Analyze runs the full pipeline over one record. It never returns an error:
// per-stage outcomes live in the result's stage map. The input record is
// treated as read-only throughout.
func (a *Analyzer) Analyze(ctx context.Context, record *types.WaveformRecord, spec types.FilterSpec) *types.AnalysisResult {
	filterEngine, peakDetector, vitalsCalc, freqAnalyzer := a.snapshotComponents()

	r := &run{
		result: &types.AnalysisResult{
			ID:        uuid.NewString(),
			Record:    record,
			Stages:    make(map[types.StageName]types.StageStatus, 7),
			StartedAt: time.Now(),
		},
	}
	allStages := []types.StageName{
		types.StageFilter, types.StagePeaks, types.StageVitals,
		types.StageRawPeaks, types.StageRawVitals,
		types.StageSpectrum, types.StageRawSpectrum,
	}
	for _, name := range allStages {
		r.setState(name, types.StagePending)
	}

	if record == nil {
		err := &types.EmptySignalError{Reason: "record is nil"}
		for _, name := range allStages {
			r.fail(name, err)
		}
		r.result.CompletedAt = time.Now()
		a.NotifyLoggers(types.ErrorLevel, "analysis rejected",
			"component", a.GetComponentMetadata().ID, "result", r.result.ID, "error", err.Error())
		return r.result
	}

	a.NotifyLoggers(types.InfoLevel, "analysis started",
		"component", a.GetComponentMetadata().ID, "result", r.result.ID,
		"samples", len(record.Samples), "samplingRate", record.SamplingRate)

	var wg sync.WaitGroup

	// Beat branch: filter, then peaks and vitals on the filtered signal. The
	// filtered spectrum hangs off the same branch since it shares the filter
	// output.
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runBeatBranch(ctx, r, record, spec, filterEngine, peakDetector, vitalsCalc, freqAnalyzer)
	}()

	// Raw branch: peaks and vitals straight off the unfiltered record, so a
	// bad filter spec still yields beat metrics.
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runRawBranch(ctx, r, record, peakDetector, vitalsCalc)
	}()

	// Raw spectrum is independent of everything else.
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runStage(ctx, r, types.StageRawSpectrum, func() error {
			if freqAnalyzer == nil {
				return &types.ValidationError{Field: "frequencyAnalyzer", Reason: "not connected"}
			}
			spectrum, err := freqAnalyzer.Analyze(ctx, record.Samples, record.SamplingRate)
			if err != nil {
				return err
			}
			r.mu.Lock()
			r.result.RawSpectrum = spectrum
			r.mu.Unlock()
			return nil
		})
	}()

	wg.Wait()

	r.result.CompletedAt = time.Now()

	a.NotifyLoggers(types.InfoLevel, "analysis completed",
		"component", a.GetComponentMetadata().ID, "result", r.result.ID,
		"duration", r.result.CompletedAt.Sub(r.result.StartedAt).String())

	return r.result
}

// runStage executes one stage body with the running/done/failed/canceled
// bookkeeping applied around it. Returns true only on success.
func (a *Analyzer) runStage(ctx context.Context, r *run, name types.StageName, body func() error) bool {
	if err := ctx.Err(); err != nil {
		r.setState(name, types.StageCanceled)
		return false
	}
	r.setState(name, types.StageRunning)
	ok := r.finish(name, body())
	if !ok {
		status := func() types.StageStatus {
			r.mu.Lock()
			defer r.mu.Unlock()
			return r.result.Stages[name]
		}()
		a.NotifyLoggers(types.WarnLevel, "stage did not complete",
			"component", a.GetComponentMetadata().ID, "result", r.result.ID,
			"stage", string(name), "state", string(status.State), "error", status.Error)
	}
	return ok
}

func (a *Analyzer) runBeatBranch(ctx context.Context, r *run, record *types.WaveformRecord, spec types.FilterSpec,
	filterEngine types.FilterEngine, peakDetector types.PeakDetector,
	vitalsCalc types.VitalsCalculator, freqAnalyzer types.FrequencyAnalyzer) {

	var filtered *types.FilteredWaveform
	ok := a.runStage(ctx, r, types.StageFilter, func() error {
		if filterEngine == nil {
			return &types.ValidationError{Field: "filterEngine", Reason: "not connected"}
		}
		fw, err := filterEngine.Apply(ctx, record, spec)
		if err != nil {
			return err
		}
		filtered = fw
		r.mu.Lock()
		r.result.Filtered = fw
		r.mu.Unlock()
		return nil
	})
	if !ok {
		r.skipOrCancel(ctx, types.StagePeaks, types.StageVitals, types.StageSpectrum)
		return
	}

	// The filtered spectrum only depends on the filter output, not on peaks.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.runStage(ctx, r, types.StageSpectrum, func() error {
			if freqAnalyzer == nil {
				return &types.ValidationError{Field: "frequencyAnalyzer", Reason: "not connected"}
			}
			spectrum, err := freqAnalyzer.Analyze(ctx, filtered.Samples, filtered.SamplingRate)
			if err != nil {
				return err
			}
			r.mu.Lock()
			r.result.Spectrum = spectrum
			r.mu.Unlock()
			return nil
		})
	}()

	var peaks *types.PeakSet
	ok = a.runStage(ctx, r, types.StagePeaks, func() error {
		if peakDetector == nil {
			return &types.ValidationError{Field: "peakDetector", Reason: "not connected"}
		}
		ps, err := peakDetector.Detect(ctx, filtered.Samples, filtered.SamplingRate)
		if err != nil {
			return err
		}
		peaks = ps
		r.mu.Lock()
		r.result.Peaks = ps
		r.mu.Unlock()
		return nil
	})
	if !ok {
		r.skipOrCancel(ctx, types.StageVitals)
		wg.Wait()
		return
	}

	a.runStage(ctx, r, types.StageVitals, func() error {
		if vitalsCalc == nil {
			return &types.ValidationError{Field: "vitalsCalculator", Reason: "not connected"}
		}
		vitals, err := vitalsCalc.Compute(ctx, peaks)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.result.Vitals = vitals
		r.mu.Unlock()
		return nil
	})

	wg.Wait()
}

func (a *Analyzer) runRawBranch(ctx context.Context, r *run, record *types.WaveformRecord,
	peakDetector types.PeakDetector, vitalsCalc types.VitalsCalculator) {

	var peaks *types.PeakSet
	ok := a.runStage(ctx, r, types.StageRawPeaks, func() error {
		if peakDetector == nil {
			return &types.ValidationError{Field: "peakDetector", Reason: "not connected"}
		}
		ps, err := peakDetector.Detect(ctx, record.Samples, record.SamplingRate)
		if err != nil {
			return err
		}
		peaks = ps
		r.mu.Lock()
		r.result.RawPeaks = ps
		r.mu.Unlock()
		return nil
	})
	if !ok {
		r.skipOrCancel(ctx, types.StageRawVitals)
		return
	}

	a.runStage(ctx, r, types.StageRawVitals, func() error {
		if vitalsCalc == nil {
			return &types.ValidationError{Field: "vitalsCalculator", Reason: "not connected"}
		}
		vitals, err := vitalsCalc.Compute(ctx, peaks)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.result.RawVitals = vitals
		r.mu.Unlock()
		return nil
	})
}
