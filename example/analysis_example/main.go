package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joeydtaylor/pulsewire/pkg/builder"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))

	// Synthesize two minutes of an arterial pressure trace at 125 Hz.
	generator := builder.NewWaveformGenerator(
		125,
		builder.GeneratorWithHeartRate(72),
		builder.GeneratorWithPressures(120, 80),
		builder.GeneratorWithJitter(0.02),
		builder.GeneratorWithNoise(1.5),
	)
	record := generator.Record(120)

	analyzer := builder.NewAnalyzer(
		builder.AnalyzerWithLogger(logger),
		builder.AnalyzerWithFilterEngine(builder.NewFilterEngine(
			builder.FilterEngineWithLogger(logger),
		)),
		builder.AnalyzerWithPeakDetector(builder.NewPeakDetector(
			builder.PeakDetectorWithLogger(logger),
			builder.PeakDetectorWithHeartRateCeiling(200),
		)),
		builder.AnalyzerWithVitalsCalculator(builder.NewVitalsCalculator(
			builder.VitalsCalculatorWithLogger(logger),
		)),
		builder.AnalyzerWithFrequencyAnalyzer(builder.NewFrequencyAnalyzer(
			builder.FrequencyAnalyzerWithLogger(logger),
			builder.FrequencyAnalyzerWithWindow(builder.HannWindow),
		)),
	)

	spec := builder.FilterSpec{LowCutoff: 0.5, HighCutoff: 10, Order: 2}
	result := analyzer.Analyze(ctx, record, spec)

	fmt.Printf("Analysis %s finished in %v\n", result.ID, result.CompletedAt.Sub(result.StartedAt))
	for name, status := range result.Stages {
		fmt.Printf("  stage %-12s %s\n", name, status.State)
	}

	if result.Vitals != nil {
		output, err := json.MarshalIndent(result.Vitals, "", "  ")
		if err != nil {
			fmt.Printf("Error converting vitals to JSON: %v\n", err)
			return
		}
		fmt.Println(string(output))
	}
	if result.Spectrum != nil {
		fmt.Printf("Dominant frequency: %.2f Hz (%.1f bpm equivalent)\n",
			result.Spectrum.DominantFrequency, result.Spectrum.DominantFrequency*60)
	}
}
