package main

import (
	"fmt"

	"github.com/joeydtaylor/pulsewire/pkg/builder"
)

func main() {
	logger := builder.NewLogger(builder.LoggerWithLevel("info"))

	analyzer := builder.NewAnalyzer(
		builder.AnalyzerWithLogger(logger),
		builder.AnalyzerWithFilterEngine(builder.NewFilterEngine()),
		builder.AnalyzerWithPeakDetector(builder.NewPeakDetector()),
		builder.AnalyzerWithVitalsCalculator(builder.NewVitalsCalculator()),
		builder.AnalyzerWithFrequencyAnalyzer(builder.NewFrequencyAnalyzer()),
	)

	session := builder.NewSession(analyzer)
	defer session.Close()

	spec := builder.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}

	// Submitting twice in a row cancels the first request; only the second
	// result is ever delivered.
	first := builder.NewWaveformGenerator(125, builder.GeneratorWithHeartRate(70)).Record(60)
	second := builder.NewWaveformGenerator(125, builder.GeneratorWithHeartRate(95)).Record(60)
	session.Submit(first, spec)
	session.Submit(second, spec)

	result := <-session.Results()
	fmt.Printf("Analysis %s delivered\n", result.ID)
	if result.Vitals != nil && result.Vitals.HeartRate.Valid {
		fmt.Printf("Heart rate: %.1f bpm\n", result.Vitals.HeartRate.Value)
	}
	for name, status := range result.Stages {
		fmt.Printf("  stage %-12s %s\n", name, status.State)
	}
}
