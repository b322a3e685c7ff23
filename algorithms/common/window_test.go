package common

import "testing"

func TestSlidingWindowFillsToCapacity(t *testing.T) {
	w := NewSlidingWindow(3)
	if w.Full() {
		t.Fatal("new window reports Full")
	}

	w.Push(1)
	w.Push(2)
	if w.Len() != 2 || w.Full() {
		t.Fatalf("Len() = %d, Full() = %v after 2 pushes", w.Len(), w.Full())
	}

	w.Push(3)
	if !w.Full() {
		t.Fatal("window not Full at capacity")
	}
}

func TestSlidingWindowDropsOldest(t *testing.T) {
	w := NewSlidingWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}

	got := w.Values()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSlidingWindowReset(t *testing.T) {
	w := NewSlidingWindow(2)
	w.Push(1)
	w.Push(2)
	w.Reset()
	if w.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", w.Len())
	}
	w.Push(7)
	if got := w.Values(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("Values() = %v after Reset+Push, want [7]", got)
	}
}

func TestSlidingWindowMinCapacity(t *testing.T) {
	w := NewSlidingWindow(0)
	w.Push(1)
	w.Push(2)
	if got := w.Values(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Values() = %v, want [2]", got)
	}
}
