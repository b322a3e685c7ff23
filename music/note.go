// Package music provides equal-temperament note arithmetic for the
// tuner pipeline: converting a frequency into a pitch-class name, an
// octave, and a signed cents deviation from the nearest semitone.
package music

import (
	"fmt"
	"math"
)

// NoteNames lists the 12 pitch classes in chromatic order starting at C.
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Reference tuning: A4 = 440 Hz, MIDI note 69.
const (
	ReferenceFrequency = 440.0
	ReferenceMIDI      = 69
)

// NoteInfo describes a frequency in 12-tone equal temperament.
type NoteInfo struct {
	Note      string  `json:"note"`      // pitch-class name, e.g. "A", "C#"
	Octave    int     `json:"octave"`    // scientific pitch octave, A4 = octave 4
	Cents     float64 `json:"cents"`     // deviation from the nearest semitone, (-50, 50]
	Frequency float64 `json:"frequency"` // the input frequency in Hz
}

// String renders the note in scientific pitch notation with its cents
// deviation, e.g. "A2 +3.1c".
func (n NoteInfo) String() string {
	return fmt.Sprintf("%s%d %+.1fc", n.Note, n.Octave, n.Cents)
}

// FrequencyToNote maps a positive frequency to the nearest
// equal-tempered note. It is pure and stateless; the zero NoteInfo is
// returned for non-positive input.
func FrequencyToNote(hz float64) NoteInfo {
	if hz <= 0 {
		return NoteInfo{}
	}

	midi := 12.0*math.Log2(hz/ReferenceFrequency) + float64(ReferenceMIDI)
	nearest := math.Round(midi)

	class := (int(nearest)%12 + 12) % 12
	octave := int(math.Floor(nearest/12.0)) - 1
	cents := (midi - nearest) * 100.0

	return NoteInfo{
		Note:      NoteNames[class],
		Octave:    octave,
		Cents:     cents,
		Frequency: hz,
	}
}

// NoteToFrequency returns the equal-tempered frequency of a MIDI note
// number, the inverse of the mapping used by FrequencyToNote.
func NoteToFrequency(midi int) float64 {
	return ReferenceFrequency * math.Pow(2, float64(midi-ReferenceMIDI)/12.0)
}
