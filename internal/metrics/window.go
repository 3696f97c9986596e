package metrics

import "sync"

// DefaultWindowSize is the default number of samples to retain.
const DefaultWindowSize = 100

// Window is a fixed-capacity, thread-safe ring buffer of Samples. Once
// full, pushing a new sample evicts the oldest. It backs both sparkline
// rendering and summary aggregation.
type Window struct {
	mu    sync.RWMutex
	data  []Sample
	head  int
	count int
	size  int
}

// NewWindow creates a window with the specified capacity.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &Window{
		data: make([]Sample, size),
		size: size,
	}
}

// Push adds a sample, evicting the oldest if the window is full.
func (w *Window) Push(s Sample) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.data[w.head] = s
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of stored samples.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.count
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return w.size
}

// Last returns the most recent sample, if any.
func (w *Window) Last() (Sample, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.count == 0 {
		return Sample{}, false
	}
	idx := (w.head - 1 + w.size) % w.size
	return w.data[idx], true
}

// Samples returns all stored samples in chronological order (oldest first).
func (w *Window) Samples() []Sample {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.samplesLocked()
}

// samplesLocked returns the chronological sample slice.
// Must be called with w.mu held.
func (w *Window) samplesLocked() []Sample {
	if w.count == 0 {
		return nil
	}

	result := make([]Sample, w.count)
	start := (w.head - w.count + w.size) % w.size
	for i := 0; i < w.count; i++ {
		result[i] = w.data[(start+i)%w.size]
	}
	return result
}

// CPUSeries returns the valid CPU readings in chronological order.
func (w *Window) CPUSeries() []float64 {
	return w.series(func(s Sample) Gauge { return s.CPU })
}

// MemorySeries returns the valid memory readings in chronological order.
func (w *Window) MemorySeries() []float64 {
	return w.series(func(s Sample) Gauge { return s.Memory })
}

// DiskSeries returns the valid disk I/O readings in chronological order.
func (w *Window) DiskSeries() []float64 {
	return w.series(func(s Sample) Gauge { return s.DiskIO })
}

// NetworkSeries returns the valid network rate readings in chronological order.
func (w *Window) NetworkSeries() []float64 {
	return w.series(func(s Sample) Gauge { return s.NetworkIO })
}

// series extracts the valid values of one gauge across the window.
// Unavailable readings are skipped, not zero-filled.
func (w *Window) series(pick func(Sample) Gauge) []float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var values []float64
	for _, s := range w.samplesLocked() {
		if g := pick(s); g.Valid {
			values = append(values, g.Value)
		}
	}
	return values
}
