package common

// SlidingWindow is a fixed-capacity FIFO of float64 values for streaming
// analysis. Pushing onto a full window drops the oldest value, so the
// window always holds the most recent samples in arrival order.
type SlidingWindow struct {
	values   []float64
	capacity int
}

// NewSlidingWindow creates an empty sliding window with the given capacity.
// A capacity below 1 is treated as 1.
func NewSlidingWindow(capacity int) *SlidingWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SlidingWindow{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a value, dropping the oldest one if the window is full.
func (w *SlidingWindow) Push(v float64) {
	if len(w.values) == w.capacity {
		copy(w.values, w.values[1:])
		w.values[len(w.values)-1] = v
		return
	}
	w.values = append(w.values, v)
}

// Len returns the number of values currently held.
func (w *SlidingWindow) Len() int {
	return len(w.values)
}

// Cap returns the window capacity.
func (w *SlidingWindow) Cap() int {
	return w.capacity
}

// Full reports whether the window has reached capacity.
func (w *SlidingWindow) Full() bool {
	return len(w.values) == w.capacity
}

// Values returns the current contents, oldest first. The returned slice
// aliases internal storage and is only valid until the next Push or Reset.
func (w *SlidingWindow) Values() []float64 {
	return w.values
}

// Reset empties the window without releasing its storage.
func (w *SlidingWindow) Reset() {
	w.values = w.values[:0]
}
