package spectral

import (
	"math"
)

// Flatness computes spectral flatness (Wiener entropy), the ratio of
// the geometric to the arithmetic mean of a magnitude spectrum. A
// plucked string concentrates energy in a few harmonics and scores low
// (near 0); broadband noise scores high (near 1), which makes flatness
// a cheap pre-filter for frames not worth running period estimation on.
type Flatness struct {
	minThreshold float64 // floor to avoid log(0)
}

// NewFlatness creates a flatness calculator with the default floor.
func NewFlatness() *Flatness {
	return &Flatness{minThreshold: 1e-10}
}

// Compute returns the flatness of a magnitude spectrum in [0, 1].
func (fl *Flatness) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	// Geometric mean in the log domain for numerical stability.
	logSum := 0.0
	validCount := 0
	for _, magnitude := range magnitudeSpectrum {
		if magnitude > fl.minThreshold {
			logSum += math.Log(magnitude)
			validCount++
		}
	}
	if validCount == 0 {
		return 0.0
	}
	geometricMean := math.Exp(logSum / float64(validCount))

	arithmeticMean := 0.0
	for _, magnitude := range magnitudeSpectrum {
		arithmeticMean += magnitude
	}
	arithmeticMean /= float64(len(magnitudeSpectrum))

	if arithmeticMean <= fl.minThreshold {
		return 0.0
	}

	flatness := geometricMean / arithmeticMean
	if flatness > 1.0 {
		flatness = 1.0
	}

	return flatness
}
