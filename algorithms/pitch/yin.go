package pitch

import (
	"fmt"
)

// PitchResult is a raw per-frame pitch estimate.
type PitchResult struct {
	Frequency float64 `json:"frequency"` // fundamental frequency in Hz
	Clarity   float64 `json:"clarity"`   // periodicity confidence (0-1)
}

// Params contains the tuning parameters for period estimation and
// octave correction.
type Params struct {
	SampleRate int `json:"sample_rate"`

	// YinThreshold is the absolute CMND threshold below which a lag is
	// accepted as periodic (typical range 0.1-0.2).
	YinThreshold float64 `json:"yin_threshold"`

	// Supported instrument range; corrected estimates outside it are
	// dropped rather than reported.
	MinFreq float64 `json:"min_freq"`
	MaxFreq float64 `json:"max_freq"`

	// OctaveRatio is the CMND ratio at double the detected period that
	// flags a harmonic-doubling error (see CorrectOctave).
	OctaveRatio float64 `json:"octave_ratio"`
}

// DefaultParams returns parameters tuned for plucked-string instruments:
// the frequency range spans a detuned low B string through the highest
// fretted notes on a standard guitar.
func DefaultParams(sampleRate int) Params {
	return Params{
		SampleRate:   sampleRate,
		YinThreshold: 0.15,
		MinFreq:      75.0,
		MaxFreq:      1400.0,
		OctaveRatio:  0.5,
	}
}

// Detector estimates the fundamental period of a monophonic frame using
// the YIN algorithm.
//
// References:
//   - de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental frequency
//     estimator for speech and music"
//
// The detector retains the CMND array of the most recent Estimate call
// so CorrectOctave can reuse it on the same frame without paying the
// O(n²) difference function twice. It is not safe for concurrent use.
type Detector struct {
	params Params

	// scratch buffers reused across calls
	diff []float64
	cmnd []float64

	// halfLen of the frame the cmnd buffer currently describes; 0 when stale
	cmndHalfLen int
}

// NewDetector creates a detector with default parameters.
func NewDetector(sampleRate int) (*Detector, error) {
	return NewDetectorWithParams(DefaultParams(sampleRate))
}

// NewDetectorWithParams creates a detector with custom parameters.
func NewDetectorWithParams(params Params) (*Detector, error) {
	if params.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", params.SampleRate)
	}
	if params.YinThreshold <= 0 || params.YinThreshold >= 1 {
		return nil, fmt.Errorf("yin threshold must be in (0, 1), got %v", params.YinThreshold)
	}
	if params.MinFreq <= 0 || params.MaxFreq <= params.MinFreq {
		return nil, fmt.Errorf("invalid frequency range [%v, %v]", params.MinFreq, params.MaxFreq)
	}
	if params.OctaveRatio <= 0 || params.OctaveRatio >= 1 {
		return nil, fmt.Errorf("octave ratio must be in (0, 1), got %v", params.OctaveRatio)
	}
	return &Detector{params: params}, nil
}

// Params returns the detector parameters.
func (d *Detector) Params() Params {
	return d.params
}

// Estimate runs YIN over one frame and returns the raw estimate, or
// (nil, nil) when the frame has no discernible pitch. The frame must
// hold at least 8 samples; shorter frames are a caller bug and fail
// fast.
func (d *Detector) Estimate(frame []float64) (*PitchResult, error) {
	if len(frame) < 8 {
		return nil, fmt.Errorf("frame too short for period estimation: %d samples", len(frame))
	}

	halfLen := len(frame) / 2
	d.computeCMND(frame, halfLen)

	tau := d.absoluteThreshold(halfLen)
	if tau < 0 {
		return nil, nil
	}

	lag := d.interpolateLag(tau, halfLen)
	clarity := 1.0 - d.cmnd[tau]
	if clarity < 0 {
		clarity = 0
	} else if clarity > 1 {
		clarity = 1
	}

	return &PitchResult{
		Frequency: float64(d.params.SampleRate) / lag,
		Clarity:   clarity,
	}, nil
}

// computeCMND fills d.cmnd with the cumulative mean normalized
// difference function of the frame. This is the O(halfLen²) hot path of
// the whole pipeline.
func (d *Detector) computeCMND(frame []float64, halfLen int) {
	if cap(d.diff) < halfLen {
		d.diff = make([]float64, halfLen)
		d.cmnd = make([]float64, halfLen)
	}
	d.diff = d.diff[:halfLen]
	d.cmnd = d.cmnd[:halfLen]

	// Squared difference of the frame against a lagged copy of itself.
	for tau := 0; tau < halfLen; tau++ {
		sum := 0.0
		for j := 0; j < halfLen; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		d.diff[tau] = sum
	}

	// Cumulative mean normalization; cmnd[0] is defined as 1.
	d.cmnd[0] = 1.0
	runningSum := 0.0
	for tau := 1; tau < halfLen; tau++ {
		runningSum += d.diff[tau]
		if runningSum == 0 {
			d.cmnd[tau] = 1.0
			continue
		}
		d.cmnd[tau] = d.diff[tau] / (runningSum / float64(tau))
	}

	d.cmndHalfLen = halfLen
}

// absoluteThreshold finds the first lag whose CMND drops below the
// threshold, then walks forward to the bottom of that dip. Stopping at
// the local minimum instead of the first crossing is the standard YIN
// refinement that keeps a noisy leading edge from pulling the estimate
// sharp. Returns -1 when no lag crosses the threshold.
func (d *Detector) absoluteThreshold(halfLen int) int {
	for tau := 2; tau < halfLen; tau++ {
		if d.cmnd[tau] >= d.params.YinThreshold {
			continue
		}
		for tau+1 < halfLen && d.cmnd[tau+1] < d.cmnd[tau] {
			tau++
		}
		return tau
	}
	return -1
}

// interpolateLag refines the integer lag by fitting a parabola through
// the CMND values around it. The correction is clamped to one lag unit
// to reject unstable fits near the array edges.
func (d *Detector) interpolateLag(tau, halfLen int) float64 {
	if tau <= 0 || tau >= halfLen-1 {
		return float64(tau)
	}

	y1 := d.cmnd[tau-1]
	y2 := d.cmnd[tau]
	y3 := d.cmnd[tau+1]

	denom := y1 - 2*y2 + y3
	if denom == 0 {
		return float64(tau)
	}

	delta := (y1 - y3) / (2 * denom)
	if delta > 1 {
		delta = 1
	} else if delta < -1 {
		delta = -1
	}

	return float64(tau) + delta
}
