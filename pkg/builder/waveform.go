package builder

import "github.com/joeydtaylor/pulsewire/pkg/internal/types"

// Core waveform and result types, re-exported for callers of the public API.
type ComponentMetadata = types.ComponentMetadata

type WaveformRecord = types.WaveformRecord

type FilterSpec = types.FilterSpec

type FilteredWaveform = types.FilteredWaveform

type Peak = types.Peak

type PeakSet = types.PeakSet

type Metric = types.Metric

type MetricReason = types.MetricReason

type VitalsResult = types.VitalsResult

type SpectralBin = types.SpectralBin

type SpectrumResult = types.SpectrumResult

type AnalysisResult = types.AnalysisResult

type StageName = types.StageName

type StageState = types.StageState

type StageStatus = types.StageStatus

// Stage names of one analysis run.
const (
	StageFilter      = types.StageFilter
	StagePeaks       = types.StagePeaks
	StageRawPeaks    = types.StageRawPeaks
	StageVitals      = types.StageVitals
	StageRawVitals   = types.StageRawVitals
	StageSpectrum    = types.StageSpectrum
	StageRawSpectrum = types.StageRawSpectrum
)

// Stage states of the analysis state machine.
const (
	StagePending  = types.StagePending
	StageRunning  = types.StageRunning
	StageDone     = types.StageDone
	StageFailed   = types.StageFailed
	StageSkipped  = types.StageSkipped
	StageCanceled = types.StageCanceled
)

// Reason codes carried by undefined metrics.
const (
	ReasonTooFewPeaks      = types.ReasonTooFewPeaks
	ReasonTooFewIntervals  = types.ReasonTooFewIntervals
	ReasonNoMatchedTroughs = types.ReasonNoMatchedTroughs
	ReasonZeroMeanInterval = types.ReasonZeroMeanInterval
)

// Error types returned by pipeline components, exported so callers can use
// errors.As against them.
type ValidationError = types.ValidationError

type EmptySignalError = types.EmptySignalError

type InsufficientDataError = types.InsufficientDataError
