// Package render holds the view-side plumbing shared by waveform displays:
// the sweeping cursor state, refresh cadence selection, quadratic smoothing,
// and the canned single-cycle demo traces shown before live data arrives.
// The types here are driven from a single UI goroutine and take no locks.
package render

import (
	"time"

	"github.com/sf044/vitalsync/internal/domain"
)

// Refresh cadence bands. Faster sweeps need more frequent redraws to keep
// the cursor motion smooth; slow sweeps can relax and save CPU.
const (
	fastInterval    = 20 * time.Millisecond
	mediumInterval  = 30 * time.Millisecond
	defaultInterval = 40 * time.Millisecond
	slowInterval    = 80 * time.Millisecond
)

// IntervalFor maps a sweep speed in px/s onto a redraw interval.
func IntervalFor(sweepSpeed float64) time.Duration {
	switch {
	case sweepSpeed > 50:
		return fastInterval
	case sweepSpeed > 25:
		return mediumInterval
	case sweepSpeed < 12.5:
		return slowInterval
	default:
		return defaultInterval
	}
}

// ScrollState is the sweeping-eraser display model: a fixed-width column
// strip with a cursor that overwrites one column per tick and wraps at the
// right edge. Pausing freezes the cursor without discarding the strip.
type ScrollState struct {
	width   int
	cursor  int
	running bool
	columns []float64
}

func NewScrollState(width int) *ScrollState {
	if width < 1 {
		width = 1
	}
	return &ScrollState{
		width:   width,
		running: true,
		columns: make([]float64, width),
	}
}

// Advance writes v at the cursor column and moves the cursor one step,
// wrapping to zero at the right edge. It reports the column written, or -1
// when paused.
func (s *ScrollState) Advance(v float64) int {
	if !s.running {
		return -1
	}
	col := s.cursor
	s.columns[col] = v
	s.cursor++
	if s.cursor >= s.width {
		s.cursor = 0
	}
	return col
}

// Pause freezes the sweep in place.
func (s *ScrollState) Pause() { s.running = false }

// Resume continues the sweep from the frozen cursor position.
func (s *ScrollState) Resume() { s.running = true }

func (s *ScrollState) Running() bool { return s.running }

func (s *ScrollState) Cursor() int { return s.cursor }

func (s *ScrollState) Width() int { return s.width }

// Columns exposes the strip for drawing. Callers must not mutate it.
func (s *ScrollState) Columns() []float64 { return s.columns }

// Resize replaces the strip and rewinds the cursor to the left edge.
func (s *ScrollState) Resize(width int) {
	if width < 1 {
		width = 1
	}
	s.width = width
	s.cursor = 0
	s.columns = make([]float64, width)
}

// quad fits a parabola through three equally spaced points (p0 at t=-1, p1
// at t=0, p2 at t=1) and evaluates it at t in [0, 1].
func quad(p0, p1, p2, t float64) float64 {
	return p1 + 0.5*t*(p2-p0) + 0.5*t*t*(p0-2*p1+p2)
}

// SmoothPoint extends a trace by one point: it fits the quadratic through
// the previous two points and the incoming sample and evaluates it at the
// half step, so single-sample spikes are eased into the drawn path. Constant
// input passes through unchanged.
func SmoothPoint(p0, p1, p2 float64) float64 {
	return quad(p0, p1, p2, 0.5)
}

// Resample maps samples onto n output points, smoothing between neighbors
// with quadratic interpolation so sparse traces keep their curve shape.
func Resample(samples []float64, n int) []float64 {
	if n <= 0 || len(samples) == 0 {
		return nil
	}
	out := make([]float64, n)
	if len(samples) == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}

	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	scale := float64(len(samples)-1) / float64(denom)
	for i := 0; i < n; i++ {
		x := float64(i) * scale
		idx := int(x)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		t := x - float64(idx)

		p1 := samples[idx]
		p2 := samples[idx+1]
		p0 := p1
		if idx > 0 {
			p0 = samples[idx-1]
		}
		out[i] = quad(p0, p1, p2, t)
	}
	return out
}

// demoTableLen is the length of a canned demo trace; a cursor over it
// cycles 0 through 49.
const demoTableLen = 50

// DemoTable is a looping single-cycle trace for preview rendering.
type DemoTable struct {
	values []float64
	pos    int
}

// NewDemoTable builds a table from one cycle of samples, resampled onto the
// fixed table length. Empty input yields a flat trace.
func NewDemoTable(cycle []float64) *DemoTable {
	values := Resample(cycle, demoTableLen)
	if values == nil {
		values = make([]float64, demoTableLen)
	}
	return &DemoTable{values: values}
}

// Next returns the current entry and advances the cycling counter.
func (d *DemoTable) Next() float64 {
	v := d.values[d.pos]
	d.pos = (d.pos + 1) % demoTableLen
	return v
}

// Pos reports the current counter position in [0, 49].
func (d *DemoTable) Pos() int { return d.pos }

// NormalizeTo maps a raw sample into [0, 1] within the kind's expected
// display range, clamping outliers to the edges.
func NormalizeTo(kind domain.WaveformKind, v float64) float64 {
	r := domain.DefaultWaveformRange(kind)
	span := r.Max - r.Min
	if span <= 0 {
		return 0
	}
	n := (v - r.Min) / span
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
