package bandpass

import (
	"math"

	"github.com/joeydtaylor/pulsewire/pkg/internal/types"
)

// filtfilt applies the section cascade forward and backward so the net phase
// response is zero and peak locations stay aligned with the raw record. The
// signal is extended at both ends by odd reflection before the first pass to
// suppress edge transients.
func filtfilt(sections []biquad, samples []float64, order int) ([]float64, error) {
	// One high-pass and one low-pass cascade of the requested order each.
	padLen := 3 * (2*order + 1)
	if len(samples) <= padLen {
		return nil, &types.InsufficientDataError{
			Op:     "zero-phase filtering",
			Needed: padLen + 1,
			Got:    len(samples),
		}
	}

	ext := oddReflect(samples, padLen)

	forward := runCascade(sections, ext)
	reverse(forward)
	backward := runCascade(sections, forward)
	reverse(backward)

	return backward[padLen : len(backward)-padLen], nil
}

func runCascade(sections []biquad, in []float64) []float64 {
	states := make([]biquadState, len(sections))
	for i, s := range sections {
		states[i] = biquadState{biquad: s}
	}

	out := make([]float64, len(in))
	for i, x := range in {
		y := x
		for j := range states {
			y = states[j].process(y)
		}
		out[i] = y
	}
	return out
}

// oddReflect extends the signal by padLen samples on each side, mirroring
// around the end points: pre[i] = 2*x[0] - x[padLen-i], and symmetrically at
// the tail. This keeps the extension continuous in value and slope.
func oddReflect(samples []float64, padLen int) []float64 {
	n := len(samples)
	out := make([]float64, n+2*padLen)

	for i := 0; i < padLen; i++ {
		out[i] = 2.0*samples[0] - samples[padLen-i]
	}
	copy(out[padLen:], samples)
	for i := 0; i < padLen; i++ {
		out[padLen+n+i] = 2.0*samples[n-1] - samples[n-2-i]
	}
	return out
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// applyRunningMean convolves with a normalized box kernel, zero-padded at the
// edges, matching a "same"-mode convolution.
func applyRunningMean(samples []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, &types.ValidationError{Field: "runningMeanWindow", Reason: "must be >= 1"}
	}

	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = 1.0 / float64(window)
	}
	return convolveSame(samples, kernel), nil
}

// applyGaussian convolves with a Gaussian kernel whose width is given as a
// full-width-at-half-maximum in milliseconds: g(t) = exp(-4 ln2 t^2 / w^2),
// truncated at +/- 3w and normalized to unit area.
func applyGaussian(samples []float64, samplingRate, fwhmMillis float64) ([]float64, error) {
	if fwhmMillis <= 0 {
		return nil, &types.ValidationError{Field: "gaussianFWHM", Reason: "must be > 0"}
	}

	w := fwhmMillis / 1000.0
	dt := 1.0 / samplingRate
	half := int(math.Ceil(3.0 * w / dt))
	if half < 1 {
		half = 1
	}

	ln2 := math.Log(2.0)
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		t := float64(i-half) * dt
		kernel[i] = math.Exp(-4.0 * ln2 * t * t / (w * w))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return convolveSame(samples, kernel), nil
}

func convolveSame(samples, kernel []float64) []float64 {
	n := len(samples)
	half := len(kernel) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		acc := 0.0
		for j, kv := range kernel {
			idx := i + j - half
			if idx < 0 || idx >= n {
				continue
			}
			acc += kv * samples[idx]
		}
		out[i] = acc
	}
	return out
}
