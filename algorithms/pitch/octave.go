package pitch

import (
	"fmt"
	"math"
)

// CorrectOctave detects and repairs harmonic-doubling errors, then
// applies the instrument range filter.
//
// YIN occasionally locks onto the second harmonic, reporting twice the
// true fundamental. A genuinely periodic signal dips in the CMND at
// both the detected period T and at 2T; when the dip at 2T is
// dramatically deeper than at T, the detected lag was the harmonic and
// the frequency is halved. Estimates outside [MinFreq, MaxFreq] after
// correction are a deliberate range filter, not an error: (nil, nil)
// is returned.
//
// When called right after Estimate on the same frame the detector's
// CMND array is reused; otherwise it is recomputed.
func (d *Detector) CorrectOctave(raw *PitchResult, frame []float64) (*PitchResult, error) {
	if raw == nil || raw.Frequency <= 0 {
		return nil, fmt.Errorf("octave correction needs a positive raw frequency")
	}
	if len(frame) < 8 {
		return nil, fmt.Errorf("frame too short for octave correction: %d samples", len(frame))
	}

	halfLen := len(frame) / 2
	if d.cmndHalfLen != halfLen {
		d.computeCMND(frame, halfLen)
	}

	frequency := raw.Frequency
	sr := float64(d.params.SampleRate)

	lagT := int(math.Round(sr / frequency))
	lag2T := int(math.Round(sr / (frequency / 2)))

	if lagT >= 1 && lagT < halfLen && lag2T < halfLen {
		if d.cmnd[lag2T] < d.cmnd[lagT]*d.params.OctaveRatio {
			frequency /= 2
		}
	}

	if frequency < d.params.MinFreq || frequency > d.params.MaxFreq {
		return nil, nil
	}

	return &PitchResult{Frequency: frequency, Clarity: raw.Clarity}, nil
}
