package builder

import "github.com/joeydtaylor/pulsewire/pkg/internal/wavegen"

type WaveformGenerator = wavegen.Generator

type WaveformGeneratorOption = wavegen.Option

// NewWaveformGenerator creates a deterministic synthetic pulse-train generator,
// useful for examples and demos without a bedside monitor attached.
func NewWaveformGenerator(samplingRate float64, options ...wavegen.Option) *wavegen.Generator {
	return wavegen.NewGenerator(samplingRate, options...)
}

// GeneratorWithHeartRate sets the beat rate in bpm.
func GeneratorWithHeartRate(bpm float64) wavegen.Option {
	return wavegen.WithHeartRate(bpm)
}

// GeneratorWithPressures sets the systolic maximum and diastolic baseline in mmHg.
func GeneratorWithPressures(systolic, diastolic float64) wavegen.Option {
	return wavegen.WithPressures(systolic, diastolic)
}

// GeneratorWithPulseWidth sets the Gaussian sigma of the systolic upstroke in seconds.
func GeneratorWithPulseWidth(sigma float64) wavegen.Option {
	return wavegen.WithPulseWidth(sigma)
}

// GeneratorWithJitter sets the per-beat interval jitter sigma in seconds.
func GeneratorWithJitter(sigma float64) wavegen.Option {
	return wavegen.WithJitter(sigma)
}

// GeneratorWithNoise sets the additive sample noise sigma.
func GeneratorWithNoise(sigma float64) wavegen.Option {
	return wavegen.WithNoise(sigma)
}

// GeneratorWithSeed fixes the random source for reproducible records.
func GeneratorWithSeed(seed int64) wavegen.Option {
	return wavegen.WithSeed(seed)
}
