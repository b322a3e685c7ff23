// Package tuner wires the detection pipeline into a session object an
// audio capture driver can poll: DC removal, noise gating, YIN period
// estimation, octave correction and temporal stabilization, one frame
// at a time.
package tuner

import (
	"fmt"
	"time"

	"github.com/tunerlab/cuerda/algorithms/filters"
	"github.com/tunerlab/cuerda/algorithms/pitch"
	"github.com/tunerlab/cuerda/algorithms/tracking"
	"github.com/tunerlab/cuerda/logging"
)

// Session owns all mutable detection state for one capture session.
// The capture driver hands it one frame per tick and renders any
// non-nil Reading; Reset is the single state-clearing operation for
// restarts. A Session must not be shared between goroutines.
type Session struct {
	config     Config
	dc         *filters.DCRemoval
	gate       *noiseGate
	detector   *pitch.Detector
	stabilizer *tracking.Stabilizer
	logger     logging.Logger

	filtered []float64
}

// NewSession creates a session with the default configuration for the
// given sample rate.
func NewSession(sampleRate int) (*Session, error) {
	return NewSessionWithConfig(DefaultConfig(sampleRate))
}

// NewSessionWithConfig creates a session from an explicit configuration.
func NewSessionWithConfig(config Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuner config: %w", err)
	}

	detector, err := pitch.NewDetectorWithParams(config.Detector)
	if err != nil {
		return nil, err
	}

	return &Session{
		config:     config,
		dc:         filters.NewDCRemovalWithCutoff(config.SampleRate, config.DCCutoff),
		gate:       newNoiseGate(config.Gate),
		detector:   detector,
		stabilizer: tracking.NewStabilizerWithParams(config.Stabilizer, nil),
		logger:     logging.WithFields(logging.Fields{"component": "tuner"}),
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.config
}

// ProcessFrame runs one captured frame through the full pipeline and
// returns a stabilized reading, or nil while the signal is silent,
// noisy or still settling. The frame is owned by the caller; the
// session never retains a reference to it. Malformed frames are a
// caller bug and fail fast.
func (s *Session) ProcessFrame(frame []float64, now time.Time) (*tracking.Reading, error) {
	if len(frame) < 8 {
		return nil, fmt.Errorf("frame too short: %d samples", len(frame))
	}

	s.filtered = s.dc.Process(frame, s.filtered)

	if ok, reason := s.gate.admit(s.filtered); !ok {
		s.logger.Debug("frame gated", logging.Fields{"reason": reason})
		return nil, nil
	}

	raw, err := s.detector.Estimate(s.filtered)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		s.logger.Debug("no discernible pitch")
		return nil, nil
	}

	corrected, err := s.detector.CorrectOctave(raw, s.filtered)
	if err != nil {
		return nil, err
	}
	if corrected == nil {
		s.logger.Debug("estimate outside instrument range", logging.Fields{
			"frequency": raw.Frequency,
		})
		return nil, nil
	}

	reading := s.stabilizer.Process(*corrected, now)
	if reading != nil {
		s.logger.Debug("stable reading", logging.Fields{
			"note":      reading.Note,
			"octave":    reading.Octave,
			"cents":     reading.Cents,
			"frequency": reading.Frequency,
		})
	}
	return reading, nil
}

// Reset returns the session to its construction-time state; the next
// frames are treated as the start of a fresh capture.
func (s *Session) Reset() {
	s.dc.Reset()
	s.stabilizer.Reset()
}
