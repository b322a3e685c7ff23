package tuner

import (
	"github.com/tunerlab/cuerda/algorithms/common"
	"github.com/tunerlab/cuerda/algorithms/spectral"
	"github.com/tunerlab/cuerda/algorithms/windowing"
)

// noiseGate rejects frames that cannot contain a playable note before
// any expensive analysis runs: first a cheap RMS check against the
// silence floor, then a spectral flatness check that weeds out frames
// dominated by broadband noise.
type noiseGate struct {
	params   GateParams
	fft      *spectral.FFT
	flatness *spectral.Flatness

	// Hann window cached per frame size; tuner frames have a fixed
	// length so in practice this is built once.
	hann     *windowing.Hann
	windowed []float64
}

func newNoiseGate(params GateParams) *noiseGate {
	return &noiseGate{
		params:   params,
		fft:      spectral.NewFFT(),
		flatness: spectral.NewFlatness(),
	}
}

// admit reports whether the frame is worth running period estimation
// on, along with the reason a frame was rejected.
func (g *noiseGate) admit(frame []float64) (bool, string) {
	if common.RMS(frame) < g.params.RMSFloor {
		return false, "below RMS floor"
	}

	if g.hann == nil || g.hann.Size() != len(frame) {
		g.hann = windowing.NewHann(len(frame), true)
		g.windowed = make([]float64, len(frame))
	}
	copy(g.windowed, frame)
	if err := g.hann.ApplyInPlace(g.windowed); err != nil {
		return false, err.Error()
	}

	if fl := g.flatness.Compute(g.fft.Magnitude(g.windowed)); fl > g.params.MaxFlatness {
		return false, "noise-like spectrum"
	}

	return true, ""
}
