package filters

import (
	"math"
)

// DCRemoval is a one-pole DC blocking filter. Cheap microphone paths
// often carry a constant offset that inflates the YIN difference
// function at every lag, so frames are run through this blocker before
// period estimation.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
//
// Transfer function: y[n] = x[n] - x[n-1] + R*y[n-1], with the pole R
// controlling the -3 dB cutoff (R closer to 1 = lower cutoff).
type DCRemoval struct {
	poleLocation float64

	// filter memory across frames within one capture session
	x1 float64
	y1 float64
}

// NewDCRemoval creates a DC blocker with the standard audio pole of
// 0.995 (cutoff around 8 Hz at 44.1 kHz), well below any playable
// string fundamental.
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{poleLocation: 0.995}
}

// NewDCRemovalWithCutoff creates a DC blocker with an explicit -3 dB
// cutoff frequency, using the approximation R = 1 - 2*pi*fc/fs.
func NewDCRemovalWithCutoff(sampleRate int, cutoffFreq float64) *DCRemoval {
	r := 1.0 - 2.0*math.Pi*cutoffFreq/float64(sampleRate)
	if r < 0 {
		r = 0
	}
	if r >= 1 {
		r = 0.999999
	}
	return &DCRemoval{poleLocation: r}
}

// Process filters the frame into dst and returns it. dst is allocated
// when nil or too short. Filter memory carries across calls so the
// blocker settles once per session, not once per frame.
func (dc *DCRemoval) Process(frame, dst []float64) []float64 {
	if len(dst) < len(frame) {
		dst = make([]float64, len(frame))
	}
	dst = dst[:len(frame)]

	x1, y1 := dc.x1, dc.y1
	for i, x := range frame {
		y := x - x1 + dc.poleLocation*y1
		dst[i] = y
		x1, y1 = x, y
	}
	dc.x1, dc.y1 = x1, y1

	return dst
}

// Reset clears the filter memory.
func (dc *DCRemoval) Reset() {
	dc.x1 = 0
	dc.y1 = 0
}
