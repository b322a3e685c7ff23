// Package tracking turns the noisy per-frame stream of raw pitch
// estimates into a debounced, temporally stable note reading suitable
// for display.
package tracking

import (
	"math"
	"time"

	"github.com/tunerlab/cuerda/algorithms/common"
	"github.com/tunerlab/cuerda/algorithms/pitch"
	"github.com/tunerlab/cuerda/music"
)

// Params contains the empirical tuning constants of the stabilizer.
// Every gate and filter threshold is named here so it can be tested and
// tuned independently.
type Params struct {
	// MinClarity gates out frames whose periodicity confidence is too
	// low to trust (attacks, silence, string noise).
	MinClarity float64 `json:"min_clarity"`

	// JumpCents is the pitch distance from the running average beyond
	// which a new note is assumed and all smoothing state is discarded.
	JumpCents float64 `json:"jump_cents"`

	// StabilityWindow / MaxSpreadCents define convergence: the last
	// StabilityWindow confident frequencies must agree within
	// MaxSpreadCents before anything is displayed.
	StabilityWindow int     `json:"stability_window"`
	MaxSpreadCents  float64 `json:"max_spread_cents"`

	// MedianWindow is the length of the median filter applied after
	// convergence, before exponential smoothing.
	MedianWindow int `json:"median_window"`

	// SmoothingAlpha is the EMA coefficient applied to the median.
	SmoothingAlpha float64 `json:"smoothing_alpha"`

	// NoteHold is how long a differing mapped note must persist before
	// the displayed note label changes.
	NoteHold time.Duration `json:"note_hold"`
}

// DefaultParams returns the stabilizer tuning used by the tuner pipeline.
func DefaultParams() Params {
	return Params{
		MinClarity:      0.85,
		JumpCents:       150.0,
		StabilityWindow: 5,
		MaxSpreadCents:  30.0,
		MedianWindow:    5,
		SmoothingAlpha:  0.1,
		NoteHold:        100 * time.Millisecond,
	}
}

// Reading is a stabilized detection value, the only output the display
// layer ever sees.
type Reading struct {
	Frequency float64 `json:"frequency"` // smoothed frequency in Hz
	Clarity   float64 `json:"clarity"`   // clarity of the frame that produced it
	Note      string  `json:"note"`      // hysteresis-resolved pitch-class name
	Octave    int     `json:"octave"`    // hysteresis-resolved octave
	Cents     float64 `json:"cents"`     // deviation of the smoothed frequency
}

// NoteMapper maps a frequency to its equal-temperament description.
type NoteMapper func(hz float64) music.NoteInfo

// Stabilizer is the per-session state machine that debounces raw pitch
// estimates. It owns its state exclusively: a single capture session
// drives Process once per frame and Reset on restart. It is not safe
// for concurrent use.
type Stabilizer struct {
	params  Params
	mapNote NoteMapper

	stability *common.SlidingWindow
	median    *common.SlidingWindow

	ema    float64
	hasEMA bool

	// displayed note label and the pending replacement candidate
	currentNote   string
	currentOctave int
	hasCurrent    bool
	pendingNote   string
	pendingOctave int
	hasPending    bool
	pendingSince  time.Time
}

// NewStabilizer creates a stabilizer with default parameters and the
// standard equal-temperament note mapping.
func NewStabilizer() *Stabilizer {
	return NewStabilizerWithParams(DefaultParams(), music.FrequencyToNote)
}

// NewStabilizerWithParams creates a stabilizer with custom parameters.
// A nil mapper falls back to music.FrequencyToNote.
func NewStabilizerWithParams(params Params, mapNote NoteMapper) *Stabilizer {
	if mapNote == nil {
		mapNote = music.FrequencyToNote
	}
	return &Stabilizer{
		params:    params,
		mapNote:   mapNote,
		stability: common.NewSlidingWindow(params.StabilityWindow),
		median:    common.NewSlidingWindow(params.MedianWindow),
	}
}

// Params returns the stabilizer parameters.
func (s *Stabilizer) Params() Params {
	return s.params
}

// Reset returns all state to its construction-time values. This is the
// only state-clearing operation; session lifecycle concerns (device
// restarts, visibility changes) reduce to a single Reset call.
func (s *Stabilizer) Reset() {
	s.stability.Reset()
	s.median.Reset()
	s.ema = 0
	s.hasEMA = false
	s.currentNote = ""
	s.currentOctave = 0
	s.hasCurrent = false
	s.clearPending()
}

func (s *Stabilizer) clearPending() {
	s.pendingNote = ""
	s.pendingOctave = 0
	s.hasPending = false
	s.pendingSince = time.Time{}
}

// Process feeds one corrected estimate through the stabilizer and
// returns a Reading once the signal has settled, or nil. A nil return
// is the expected steady state during attacks, silence and note
// changes; it never signals an error.
func (s *Stabilizer) Process(result pitch.PitchResult, now time.Time) *Reading {
	// Confidence gate. An unconfident frame breaks any stability streak.
	if result.Clarity < s.params.MinClarity {
		s.stability.Reset()
		return nil
	}

	// A large jump from the running average means a new note has begun;
	// old smoothing state must not blend across the transition.
	if s.hasEMA {
		jump := math.Abs(common.CentsBetween(s.ema, result.Frequency))
		if jump > s.params.JumpCents {
			s.Reset()
		}
	}

	// Accumulate evidence until the stability window is full.
	s.stability.Push(result.Frequency)
	if !s.stability.Full() {
		return nil
	}

	// Convergence: the window keeps sliding (not cleared) while the
	// signal settles out of an attack transient or vibrato.
	if common.SpreadCents(s.stability.Values()) > s.params.MaxSpreadCents {
		return nil
	}

	s.median.Push(result.Frequency)
	median := common.Median(s.median.Values())

	if !s.hasEMA {
		s.ema = median
		s.hasEMA = true
	} else {
		s.ema = s.params.SmoothingAlpha*median + (1-s.params.SmoothingAlpha)*s.ema
	}

	info := s.mapNote(s.ema)
	note, octave := s.resolveNote(info, now)

	return &Reading{
		Frequency: s.ema,
		Clarity:   result.Clarity,
		Note:      note,
		Octave:    octave,
		Cents:     info.Cents,
	}
}

// resolveNote applies hysteresis to the displayed note label: a mapped
// note that differs from the current one must persist for NoteHold
// before it is committed. This debounces the label, not the numeric
// value, so readings near a semitone boundary do not flicker.
func (s *Stabilizer) resolveNote(info music.NoteInfo, now time.Time) (string, int) {
	if !s.hasCurrent {
		s.currentNote = info.Note
		s.currentOctave = info.Octave
		s.hasCurrent = true
		s.clearPending()
		return s.currentNote, s.currentOctave
	}

	if info.Note == s.currentNote && info.Octave == s.currentOctave {
		s.clearPending()
		return s.currentNote, s.currentOctave
	}

	if !s.hasPending || info.Note != s.pendingNote || info.Octave != s.pendingOctave {
		s.pendingNote = info.Note
		s.pendingOctave = info.Octave
		s.hasPending = true
		s.pendingSince = now
		return s.currentNote, s.currentOctave
	}

	if now.Sub(s.pendingSince) >= s.params.NoteHold {
		s.currentNote = s.pendingNote
		s.currentOctave = s.pendingOctave
		s.clearPending()
	}
	return s.currentNote, s.currentOctave
}
