// Package wavegen produces deterministic synthetic arterial-pressure
// waveforms for examples and tests: a diastolic baseline with one Gaussian
// systolic upstroke per beat, optional beat-interval jitter, and optional
// additive noise. Identical configuration always yields identical samples.
package wavegen

import (
	"math"
	"math/rand"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

type Generator struct {
	samplingRate float64
	heartRate    float64 // bpm
	systolic     float64 // beat maximum, mmHg
	diastolic    float64 // baseline, mmHg
	pulseWidth   float64 // Gaussian sigma of the systolic upstroke, seconds
	jitter       float64 // per-beat interval jitter sigma, seconds
	noise        float64 // additive noise sigma, native units
	seed         int64
}

type Option func(*Generator)

// WithHeartRate sets the beat rate in bpm.
func WithHeartRate(bpm float64) Option { return func(g *Generator) { g.heartRate = bpm } }

// WithPressures sets the systolic maximum and diastolic baseline in mmHg.
func WithPressures(systolic, diastolic float64) Option {
	return func(g *Generator) {
		g.systolic = systolic
		g.diastolic = diastolic
	}
}

// WithPulseWidth sets the Gaussian sigma of the systolic upstroke in seconds.
func WithPulseWidth(sigma float64) Option { return func(g *Generator) { g.pulseWidth = sigma } }

// WithJitter sets the per-beat interval jitter sigma in seconds.
func WithJitter(sigma float64) Option { return func(g *Generator) { g.jitter = sigma } }

// WithNoise sets the additive sample noise sigma.
func WithNoise(sigma float64) Option { return func(g *Generator) { g.noise = sigma } }

// WithSeed fixes the random source; generators with equal seeds and settings
// emit identical records.
func WithSeed(seed int64) Option { return func(g *Generator) { g.seed = seed } }

// NewGenerator builds a pulse-train generator at the given sampling rate.
func NewGenerator(samplingRate float64, options ...Option) *Generator {
	g := &Generator{
		samplingRate: samplingRate,
		heartRate:    75,
		systolic:     120,
		diastolic:    80,
		pulseWidth:   0.08,
		seed:         1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Record synthesizes the given duration of signal.
func (g *Generator) Record(seconds float64) *types.WaveformRecord {
	rng := rand.New(rand.NewSource(g.seed))
	n := int(math.Round(g.samplingRate * seconds))
	samples := make([]float64, n)

	period := 60.0 / g.heartRate
	beatTimes := make([]float64, 0, int(seconds/period)+2)
	t := period / 2 // first systolic upstroke half a period in
	for t < seconds {
		beatTimes = append(beatTimes, t)
		dt := period
		if g.jitter > 0 {
			dt += rng.NormFloat64() * g.jitter
			if dt < period/4 {
				dt = period / 4
			}
		}
		t += dt
	}

	amp := g.systolic - g.diastolic
	for i := range samples {
		ti := float64(i) / g.samplingRate
		v := g.diastolic
		for _, bt := range beatTimes {
			d := ti - bt
			if d < -4*g.pulseWidth || d > 4*g.pulseWidth {
				continue
			}
			v += amp * math.Exp(-0.5*d*d/(g.pulseWidth*g.pulseWidth))
		}
		if g.noise > 0 {
			v += rng.NormFloat64() * g.noise
		}
		samples[i] = v
	}

	return &types.WaveformRecord{Samples: samples, SamplingRate: g.samplingRate, Channel: "ABP"}
}

// BeatPeriod returns the nominal inter-beat interval in seconds.
func (g *Generator) BeatPeriod() float64 {
	return 60.0 / g.heartRate
}
