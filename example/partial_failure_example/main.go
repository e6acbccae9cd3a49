package main

import (
	"context"
	"fmt"

	"github.com/joeydtaylor/pulsewire/pkg/builder"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("warn"))

	record := builder.NewWaveformGenerator(
		125,
		builder.GeneratorWithHeartRate(80),
	).Record(60)

	analyzer := builder.NewAnalyzer(
		builder.AnalyzerWithLogger(logger),
		builder.AnalyzerWithFilterEngine(builder.NewFilterEngine()),
		builder.AnalyzerWithPeakDetector(builder.NewPeakDetector()),
		builder.AnalyzerWithVitalsCalculator(builder.NewVitalsCalculator()),
		builder.AnalyzerWithFrequencyAnalyzer(builder.NewFrequencyAnalyzer()),
	)

	// The cutoffs are deliberately inverted, so the filter stage fails while
	// the raw branch keeps going.
	badSpec := builder.FilterSpec{LowCutoff: 10, HighCutoff: 0.5, Order: 2}
	result := analyzer.Analyze(ctx, record, badSpec)

	fmt.Printf("Analysis %s\n", result.ID)
	for name, status := range result.Stages {
		line := fmt.Sprintf("  stage %-12s %s", name, status.State)
		if status.Error != "" {
			line += " (" + status.Error + ")"
		}
		fmt.Println(line)
	}

	if result.RawVitals != nil && result.RawVitals.HeartRate.Valid {
		fmt.Printf("Raw heart rate still available: %.1f bpm\n", result.RawVitals.HeartRate.Value)
	}
	if result.RawSpectrum != nil {
		fmt.Printf("Raw spectrum still available: %d bins at %.3f Hz resolution\n",
			len(result.RawSpectrum.Bins), result.RawSpectrum.Resolution)
	}
}
