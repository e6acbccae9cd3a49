package builder

import (
	"github.com/joeydtaylor/pulsewire/pkg/internal/beatdetect"
	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// NewPeakDetector creates a systolic peak detector.
func NewPeakDetector(options ...types.Option[types.PeakDetector]) types.PeakDetector {
	return beatdetect.NewPeakDetector(options...)
}

// PeakDetectorWithLogger adds a logger to the PeakDetector.
func PeakDetectorWithLogger(logger ...types.Logger) types.Option[types.PeakDetector] {
	return beatdetect.WithLogger(logger...)
}

// PeakDetectorWithComponentMetadata adds component metadata overrides.
func PeakDetectorWithComponentMetadata(name string, id string) types.Option[types.PeakDetector] {
	return beatdetect.WithComponentMetadata(name, id)
}

// PeakDetectorWithHeartRateCeiling sets the physiological rate ceiling in bpm
// that bounds the minimum inter-peak distance.
func PeakDetectorWithHeartRateCeiling(bpm float64) types.Option[types.PeakDetector] {
	return beatdetect.WithHeartRateCeiling(bpm)
}

// PeakDetectorWithHeightPercentile sets the amplitude percentile used as the
// candidate threshold.
func PeakDetectorWithHeightPercentile(p float64) types.Option[types.PeakDetector] {
	return beatdetect.WithHeightPercentile(p)
}

// PeakDetectorWithMinProminenceFraction sets the minimum prominence as a
// fraction of the signal range.
func PeakDetectorWithMinProminenceFraction(f float64) types.Option[types.PeakDetector] {
	return beatdetect.WithMinProminenceFraction(f)
}
