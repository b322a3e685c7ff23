package tuner

import (
	"fmt"

	"github.com/tunerlab/cuerda/algorithms/pitch"
	"github.com/tunerlab/cuerda/algorithms/tracking"
)

// GateParams configures the pre-estimation noise gate. The gate exists
// to keep obviously hopeless frames (silence, broadband noise) away
// from the O(n²) period estimator.
type GateParams struct {
	// RMSFloor is the minimum frame RMS level; quieter frames are
	// treated as silence.
	RMSFloor float64 `json:"rms_floor"`

	// MaxFlatness is the spectral flatness ceiling; frames flatter than
	// this are noise-like rather than tonal.
	MaxFlatness float64 `json:"max_flatness"`
}

// Config gathers every tuning constant of the pipeline in one place.
type Config struct {
	SampleRate int             `json:"sample_rate"`
	Detector   pitch.Params    `json:"detector"`
	Stabilizer tracking.Params `json:"stabilizer"`
	Gate       GateParams      `json:"gate"`

	// DCCutoff is the -3 dB cutoff of the DC blocking pre-filter in Hz.
	DCCutoff float64 `json:"dc_cutoff"`
}

// DefaultConfig returns the pipeline configuration tuned for plucked
// string instruments at the given capture sample rate.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate: sampleRate,
		Detector:   pitch.DefaultParams(sampleRate),
		Stabilizer: tracking.DefaultParams(),
		Gate: GateParams{
			RMSFloor:    0.01,
			MaxFlatness: 0.6,
		},
		DCCutoff: 8.0,
	}
}

// Validate checks config consistency beyond what the component
// constructors verify themselves.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.Detector.SampleRate != c.SampleRate {
		return fmt.Errorf("detector sample rate %d does not match pipeline sample rate %d",
			c.Detector.SampleRate, c.SampleRate)
	}
	if c.Gate.RMSFloor < 0 {
		return fmt.Errorf("gate RMS floor must not be negative, got %v", c.Gate.RMSFloor)
	}
	if c.Gate.MaxFlatness <= 0 || c.Gate.MaxFlatness > 1 {
		return fmt.Errorf("gate flatness ceiling must be in (0, 1], got %v", c.Gate.MaxFlatness)
	}
	if c.DCCutoff <= 0 || c.DCCutoff >= c.Detector.MinFreq {
		return fmt.Errorf("DC cutoff %v must sit below the detector range floor %v",
			c.DCCutoff, c.Detector.MinFreq)
	}
	return nil
}
