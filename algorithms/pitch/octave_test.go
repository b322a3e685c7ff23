package pitch

import (
	"math"
	"testing"
)

func TestCorrectOctaveHalvesDoubledEstimate(t *testing.T) {
	d, _ := NewDetector(testSampleRate)
	f0 := 110.0
	frame := sineFrame(f0, 4096)

	// Prime the shared CMND array, then hand the corrector an estimate
	// stuck on the second harmonic. The CMND dip at the true period is
	// far deeper than at the harmonic's period, so the corrector must
	// halve it.
	if _, err := d.Estimate(frame); err != nil {
		t.Fatal(err)
	}
	raw := &PitchResult{Frequency: 2 * f0, Clarity: 0.95}

	corrected, err := d.CorrectOctave(raw, frame)
	if err != nil {
		t.Fatal(err)
	}
	if corrected == nil {
		t.Fatal("CorrectOctave dropped an in-range estimate")
	}
	if relErr := math.Abs(corrected.Frequency-f0) / f0; relErr > 0.01 {
		t.Fatalf("corrected frequency = %v, want ~%v", corrected.Frequency, f0)
	}
	if corrected.Clarity != raw.Clarity {
		t.Fatalf("clarity = %v, want passthrough %v", corrected.Clarity, raw.Clarity)
	}
}

func TestCorrectOctaveKeepsTrueFundamental(t *testing.T) {
	d, _ := NewDetector(testSampleRate)
	f0 := 110.0
	frame := sineFrame(f0, 4096)

	raw, err := d.Estimate(frame)
	if err != nil || raw == nil {
		t.Fatalf("Estimate: %v, %+v", err, raw)
	}

	corrected, err := d.CorrectOctave(raw, frame)
	if err != nil {
		t.Fatal(err)
	}
	if corrected == nil {
		t.Fatal("CorrectOctave dropped a valid estimate")
	}
	if relErr := math.Abs(corrected.Frequency-f0) / f0; relErr > 0.01 {
		t.Fatalf("corrected frequency = %v, want ~%v (no halving)", corrected.Frequency, f0)
	}
}

func TestCorrectOctaveRangeFilter(t *testing.T) {
	d, _ := NewDetector(testSampleRate)
	// On silence the CMND is identically 1, so the harmonic check can
	// never fire and the range filter is exercised in isolation.
	frame := make([]float64, 4096)

	for _, hz := range []float64{50.0, 74.9, 1400.1, 2000.0} {
		raw := &PitchResult{Frequency: hz, Clarity: 0.99}
		corrected, err := d.CorrectOctave(raw, frame)
		if err != nil {
			t.Fatalf("CorrectOctave(%v Hz): %v", hz, err)
		}
		if corrected != nil {
			t.Fatalf("CorrectOctave(%v Hz) = %+v, want nil (out of range)", hz, corrected)
		}
	}
}

func TestCorrectOctaveRangeBoundaries(t *testing.T) {
	d, _ := NewDetector(testSampleRate)
	frame := make([]float64, 4096)

	// The boundaries themselves are inside the supported range.
	for _, hz := range []float64{75.0, 1400.0} {
		raw := &PitchResult{Frequency: hz, Clarity: 0.9}
		corrected, err := d.CorrectOctave(raw, frame)
		if err != nil {
			t.Fatalf("CorrectOctave(%v Hz): %v", hz, err)
		}
		if corrected == nil {
			t.Fatalf("CorrectOctave(%v Hz) = nil, boundary values are in range", hz)
		}
		if corrected.Frequency != hz {
			t.Fatalf("CorrectOctave(%v Hz) = %v Hz, want passthrough", hz, corrected.Frequency)
		}
	}
}

func TestCorrectOctaveInvalidInput(t *testing.T) {
	d, _ := NewDetector(testSampleRate)
	frame := sineFrame(110, 2048)

	if _, err := d.CorrectOctave(nil, frame); err == nil {
		t.Fatal("nil raw result should fail fast")
	}
	if _, err := d.CorrectOctave(&PitchResult{Frequency: -1}, frame); err == nil {
		t.Fatal("non-positive frequency should fail fast")
	}
	if _, err := d.CorrectOctave(&PitchResult{Frequency: 110}, make([]float64, 4)); err == nil {
		t.Fatal("too-short frame should fail fast")
	}
}

func TestCorrectOctaveRecomputesForNewFrame(t *testing.T) {
	d, _ := NewDetector(testSampleRate)

	// Prime CMND with one frame size, then correct against another; the
	// corrector must recompute rather than index stale data.
	if _, err := d.Estimate(sineFrame(110, 2048)); err != nil {
		t.Fatal(err)
	}

	f0 := 110.0
	frame := sineFrame(f0, 4096)
	raw := &PitchResult{Frequency: 2 * f0, Clarity: 0.95}
	corrected, err := d.CorrectOctave(raw, frame)
	if err != nil {
		t.Fatal(err)
	}
	if corrected == nil {
		t.Fatal("CorrectOctave dropped an in-range estimate")
	}
	if relErr := math.Abs(corrected.Frequency-f0) / f0; relErr > 0.01 {
		t.Fatalf("corrected frequency = %v, want ~%v", corrected.Frequency, f0)
	}
}
