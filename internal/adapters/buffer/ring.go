// Package buffer provides the fixed-capacity sample store backing each
// waveform channel.
package buffer

import "sync"

// Ring is a bounded, timestamp-ordered waveform sample buffer. Appends are
// lossy by design: once full, the oldest samples are discarded so the buffer
// always holds the most recent capacity samples. A batch whose timestamp is
// not strictly greater than the last accepted one is rejected.
type Ring struct {
	mu     sync.Mutex
	data   []float64
	cap    int
	lastTS int64
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{
		data: make([]float64, 0, capacity),
		cap:  capacity,
	}
}

// Append adds a batch of samples stamped at ts. Returns false when the batch
// is rejected for violating timestamp monotonicity; the caller decides how
// to report it.
func (r *Ring) Append(ts int64, samples []float64) bool {
	if len(samples) == 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) > 0 && r.lastTS != 0 && ts <= r.lastTS {
		return false
	}
	r.lastTS = ts

	if len(samples) >= r.cap {
		// Batch alone exceeds capacity: keep only its newest samples.
		r.data = r.data[:r.cap]
		copy(r.data, samples[len(samples)-r.cap:])
		return true
	}

	overflow := len(r.data) + len(samples) - r.cap
	if overflow > 0 {
		r.data = append(r.data[:0], r.data[overflow:]...)
	}
	r.data = append(r.data, samples...)
	return true
}

// Snapshot returns a copy of the buffered samples, oldest first. The copy is
// safe to hold across concurrent appends.
func (r *Ring) Snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.data))
	copy(out, r.data)
	return out
}

// Len reports the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Cap reports the buffer capacity.
func (r *Ring) Cap() int { return r.cap }

// LastTimestamp returns the timestamp of the most recently accepted batch,
// or 0 if nothing has been accepted yet.
func (r *Ring) LastTimestamp() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastTS
}

// Resize changes the capacity, retaining the newest samples that fit.
func (r *Ring) Resize(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data) > capacity {
		r.data = append(r.data[:0], r.data[len(r.data)-capacity:]...)
	}
	resized := make([]float64, len(r.data), capacity)
	copy(resized, r.data)
	r.data = resized
	r.cap = capacity
}
