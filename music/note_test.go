package music

import (
	"math"
	"testing"
)

func TestFrequencyToNoteA4(t *testing.T) {
	n := FrequencyToNote(440.0)
	if n.Note != "A" || n.Octave != 4 {
		t.Fatalf("FrequencyToNote(440) = %s%d, want A4", n.Note, n.Octave)
	}
	if math.Abs(n.Cents) > 1e-9 {
		t.Fatalf("Cents = %v, want 0", n.Cents)
	}
}

func TestFrequencyToNoteOpenStrings(t *testing.T) {
	// Standard guitar tuning, low to high.
	cases := []struct {
		hz     float64
		note   string
		octave int
	}{
		{82.41, "E", 2},
		{110.00, "A", 2},
		{146.83, "D", 3},
		{196.00, "G", 3},
		{246.94, "B", 3},
		{329.63, "E", 4},
	}

	for _, tc := range cases {
		n := FrequencyToNote(tc.hz)
		if n.Note != tc.note || n.Octave != tc.octave {
			t.Errorf("FrequencyToNote(%.2f) = %s%d, want %s%d", tc.hz, n.Note, n.Octave, tc.note, tc.octave)
		}
		if math.Abs(n.Cents) > 5 {
			t.Errorf("FrequencyToNote(%.2f) cents = %v, want |cents| < 5", tc.hz, n.Cents)
		}
	}
}

func TestFrequencyToNoteSharpAndFlat(t *testing.T) {
	// 30 cents sharp of A4.
	sharp := 440.0 * math.Pow(2, 30.0/1200.0)
	n := FrequencyToNote(sharp)
	if n.Note != "A" || n.Octave != 4 {
		t.Fatalf("30c sharp of A4 mapped to %s%d", n.Note, n.Octave)
	}
	if math.Abs(n.Cents-30) > 0.01 {
		t.Fatalf("Cents = %v, want ~30", n.Cents)
	}

	// 30 cents flat of A4.
	flat := 440.0 * math.Pow(2, -30.0/1200.0)
	n = FrequencyToNote(flat)
	if n.Note != "A" || n.Octave != 4 {
		t.Fatalf("30c flat of A4 mapped to %s%d", n.Note, n.Octave)
	}
	if math.Abs(n.Cents+30) > 0.01 {
		t.Fatalf("Cents = %v, want ~-30", n.Cents)
	}
}

func TestFrequencyToNoteSemitoneBoundary(t *testing.T) {
	// 60 cents above A4 is nearer A#4 and should read 40 cents flat of it.
	hz := 440.0 * math.Pow(2, 60.0/1200.0)
	n := FrequencyToNote(hz)
	if n.Note != "A#" || n.Octave != 4 {
		t.Fatalf("60c above A4 mapped to %s%d, want A#4", n.Note, n.Octave)
	}
	if math.Abs(n.Cents+40) > 0.01 {
		t.Fatalf("Cents = %v, want ~-40", n.Cents)
	}
}

func TestFrequencyToNoteOctaveBoundary(t *testing.T) {
	// B3 to C4 crosses the octave label boundary.
	n := FrequencyToNote(246.94)
	if n.Note != "B" || n.Octave != 3 {
		t.Fatalf("246.94 Hz = %s%d, want B3", n.Note, n.Octave)
	}
	n = FrequencyToNote(261.63)
	if n.Note != "C" || n.Octave != 4 {
		t.Fatalf("261.63 Hz = %s%d, want C4", n.Note, n.Octave)
	}
}

func TestFrequencyToNoteNonPositive(t *testing.T) {
	n := FrequencyToNote(0)
	if n.Note != "" || n.Frequency != 0 {
		t.Fatalf("FrequencyToNote(0) = %+v, want zero value", n)
	}
}

func TestNoteToFrequencyRoundTrip(t *testing.T) {
	for midi := 28; midi <= 88; midi++ { // E1..E6, covers the tuner range
		hz := NoteToFrequency(midi)
		n := FrequencyToNote(hz)
		back := 12.0*math.Log2(hz/ReferenceFrequency) + ReferenceMIDI
		if int(math.Round(back)) != midi {
			t.Fatalf("round trip failed for MIDI %d (%.2f Hz, read %s%d)", midi, hz, n.Note, n.Octave)
		}
	}
}

func TestNoteInfoString(t *testing.T) {
	n := NoteInfo{Note: "A", Octave: 2, Cents: 3.14}
	if got := n.String(); got != "A2 +3.1c" {
		t.Fatalf("String() = %q, want %q", got, "A2 +3.1c")
	}
}
