package bandpass

import "math"

// biquad is one second-order IIR section in normalized form (a0 == 1).
// First-order sections set b2 and a2 to zero.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// process runs one sample through the section in transposed direct form II,
// mutating the delay line held in z1/z2.
type biquadState struct {
	biquad
	z1, z2 float64
}

func (s *biquadState) process(x float64) float64 {
	y := s.b0*x + s.z1
	s.z1 = s.b1*x - s.a1*y + s.z2
	s.z2 = s.b2*x - s.a2*y
	return y
}

// designBandpass builds a Butterworth band-pass as an order-N high-pass at
// the low cutoff cascaded with an order-N low-pass at the high cutoff. Each
// cascade is made of bilinear-transform biquads with Butterworth pole Qs;
// odd orders get a trailing first-order section.
func designBandpass(lowCutoff, highCutoff float64, order int, samplingRate float64) []biquad {
	sections := make([]biquad, 0, order+2)
	sections = append(sections, butterworthCascade(lowCutoff, order, samplingRate, true)...)
	sections = append(sections, butterworthCascade(highCutoff, order, samplingRate, false)...)
	return sections
}

func butterworthCascade(cutoff float64, order int, samplingRate float64, highpass bool) []biquad {
	sections := make([]biquad, 0, order/2+1)

	// Pole pair k of an order-N Butterworth prototype sits at angle
	// theta = pi*(2k+1)/(2N) from the imaginary axis, giving Q = 1/(2 sin theta).
	for k := 0; k < order/2; k++ {
		theta := math.Pi * (2.0*float64(k) + 1.0) / (2.0 * float64(order))
		q := 1.0 / (2.0 * math.Sin(theta))
		sections = append(sections, secondOrderSection(cutoff, q, samplingRate, highpass))
	}
	if order%2 == 1 {
		sections = append(sections, firstOrderSection(cutoff, samplingRate, highpass))
	}
	return sections
}

// secondOrderSection computes RBJ cookbook coefficients for a low- or
// high-pass biquad at the given cutoff and Q.
func secondOrderSection(cutoff, q, samplingRate float64, highpass bool) biquad {
	w0 := 2.0 * math.Pi * cutoff / samplingRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2.0 * q)

	a0 := 1.0 + alpha
	s := biquad{
		a1: -2.0 * cw / a0,
		a2: (1.0 - alpha) / a0,
	}
	if highpass {
		s.b0 = (1.0 + cw) / 2.0 / a0
		s.b1 = -(1.0 + cw) / a0
		s.b2 = (1.0 + cw) / 2.0 / a0
	} else {
		s.b0 = (1.0 - cw) / 2.0 / a0
		s.b1 = (1.0 - cw) / a0
		s.b2 = (1.0 - cw) / 2.0 / a0
	}
	return s
}

// firstOrderSection computes a single-pole low- or high-pass via the bilinear
// transform with frequency prewarping.
func firstOrderSection(cutoff, samplingRate float64, highpass bool) biquad {
	k := math.Tan(math.Pi * cutoff / samplingRate)
	a0 := k + 1.0
	s := biquad{
		a1: (k - 1.0) / a0,
	}
	if highpass {
		s.b0 = 1.0 / a0
		s.b1 = -1.0 / a0
	} else {
		s.b0 = k / a0
		s.b1 = k / a0
	}
	return s
}
