// Package model holds the channel layer between providers and consumers: one
// stateful channel per waveform and parameter kind, alarm classification, and
// the registry that owns them all. Channels are safe for concurrent use and
// run subscriber callbacks outside their locks.
package model

import (
	"fmt"
	"sync"

	"github.com/sf044/vitalsync/internal/adapters/buffer"
	"github.com/sf044/vitalsync/internal/domain"
)

// WaveformChannel owns the sample history and display metadata for one
// waveform kind.
type WaveformChannel struct {
	mu         sync.Mutex
	kind       domain.WaveformKind
	active     bool
	sampleRate int
	sweepSpeed float64
	rng        domain.ValueRange
	color      domain.Color
	buf        *buffer.Ring
	subs       []func(domain.WaveformBatch)
}

func NewWaveformChannel(kind domain.WaveformKind) *WaveformChannel {
	return &WaveformChannel{
		kind:       kind,
		sampleRate: domain.DefaultSampleRate,
		sweepSpeed: domain.DefaultSweepSpeed,
		rng:        domain.DefaultWaveformRange(kind),
		color:      domain.DefaultWaveformColor(kind),
		buf:        buffer.NewRing(domain.DefaultBufferSize),
	}
}

func (c *WaveformChannel) Kind() domain.WaveformKind { return c.kind }

// AppendBatch stores a batch and notifies subscribers. Batches violating
// timestamp monotonicity are rejected with an error; the channel state is
// untouched.
func (c *WaveformChannel) AppendBatch(b domain.WaveformBatch) error {
	c.mu.Lock()
	if !c.buf.Append(b.TimestampMs, b.Samples) {
		last := c.buf.LastTimestamp()
		c.mu.Unlock()
		return fmt.Errorf("%v: batch at %dms not after %dms", c.kind, b.TimestampMs, last)
	}
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(b)
	}
	return nil
}

// Snapshot returns a copy of the buffered samples, oldest first.
func (c *WaveformChannel) Snapshot() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Snapshot()
}

// Subscribe registers a callback invoked for every accepted batch. Callbacks
// run on the producer goroutine; keep them short.
func (c *WaveformChannel) Subscribe(fn func(domain.WaveformBatch)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *WaveformChannel) SetActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = active
}

func (c *WaveformChannel) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetSweepSpeed updates the display sweep speed in px/s. Non-positive values
// are rejected.
func (c *WaveformChannel) SetSweepSpeed(pxPerSec float64) error {
	if pxPerSec <= 0 {
		return fmt.Errorf("%v: sweep speed %v must be positive", c.kind, pxPerSec)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepSpeed = pxPerSec
	return nil
}

func (c *WaveformChannel) SweepSpeed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepSpeed
}

func (c *WaveformChannel) SampleRate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleRate
}

// SetSampleRate adjusts the nominal sampling rate and resizes the history
// buffer to keep DefaultBufferSeconds of data.
func (c *WaveformChannel) SetSampleRate(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("%v: sample rate %d must be positive", c.kind, hz)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sampleRate = hz
	c.buf.Resize(hz * domain.DefaultBufferSeconds)
	return nil
}

func (c *WaveformChannel) Range() domain.ValueRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

func (c *WaveformChannel) Color() domain.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color
}

// Clear drops the buffered history, e.g. on provider switch.
func (c *WaveformChannel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = buffer.NewRing(c.buf.Cap())
}
