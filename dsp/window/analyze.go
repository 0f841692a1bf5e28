package window

import "math"

// Analysis holds numerically measured spectral properties of a window.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// HighestSidelobedB is the highest sidelobe relative to DC in dB.
	HighestSidelobedB float64
	// FirstMinimumBins is the position of the first null in bins.
	FirstMinimumBins float64
	// ScallopLossdB is the response half a bin off-centre, relative to DC.
	ScallopLossdB float64
}

// response evaluates |W(f)|^2 / |W(0)|^2 at normalized frequency f in [0, 0.5].
type response struct {
	coeffs []float64
	invDC  float64
}

func (r response) at(freq float64) float64 {
	re, im := 0.0, 0.0

	w := 2 * math.Pi * freq
	for k, c := range r.coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}

	return (re*re + im*im) * r.invDC
}

// Analyze measures the spectral properties of coeffs by direct evaluation of
// the window's DTFT. Windows with zero DC response yield a zero Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	sum, sumSq := 0.0, 0.0
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	if sum == 0 {
		return Analysis{}
	}

	resp := response{coeffs: coeffs, invDC: 1 / (sum * sum)}
	nf := float64(n)
	firstMin := firstMinimum(resp, nf)

	return Analysis{
		CoherentGain:      sum / nf,
		ENBW:              nf * sumSq / (sum * sum),
		Bandwidth3dB:      halfPowerWidth(resp, nf),
		HighestSidelobedB: highestSidelobe(resp, firstMin, nf),
		FirstMinimumBins:  firstMin,
		ScallopLossdB:     powerToDB(resp.at(0.5 / nf)),
	}
}

// halfPowerWidth bisects for the -3 dB point and returns the two-sided width.
func halfPowerWidth(resp response, nf float64) float64 {
	lo, hi := 0.0, 0.5
	for range 80 {
		mid := (lo + hi) / 2
		if resp.at(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 2 * lo * nf
}

// firstMinimum scans outward in 1/8-bin steps for the first turn-around
// below 10% of DC, then refines it with a golden-section search.
func firstMinimum(resp response, nf float64) float64 {
	step := 1 / (nf * 8)

	prev := 1.0
	coarse := step

	for f := step; f < 0.5; f += step {
		v := resp.at(f)
		if prev < 0.1 && v > prev {
			coarse = f - step
			break
		}

		prev = v
	}

	a := math.Max(coarse-2*step, 0)
	b := math.Min(coarse+2*step, 0.5)

	const phi = 0.6180339887498949

	c := b - phi*(b-a)
	d := a + phi*(b-a)

	for range 80 {
		if resp.at(c) < resp.at(d) {
			b = d
		} else {
			a = c
		}

		c = b - phi*(b-a)
		d = a + phi*(b-a)
	}

	return (a + b) / 2 * nf
}

func highestSidelobe(resp response, firstMinBins, nf float64) float64 {
	step := 1 / (nf * 8)

	peak, peakFreq := 0.0, firstMinBins/nf
	for f := firstMinBins / nf; f < 0.5; f += step {
		if v := resp.at(f); v > peak {
			peak, peakFreq = v, f
		}
	}

	fine := step / 32
	for f := math.Max(peakFreq-step, 0); f <= peakFreq+step; f += fine {
		if v := resp.at(f); v > peak {
			peak = v
		}
	}

	return powerToDB(peak)
}

func powerToDB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(ratio)
}
