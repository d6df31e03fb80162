package vitalsync

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sf044/vitalsync/internal/domain"
	"github.com/sf044/vitalsync/internal/ports"
)

// ErrChannelSinkClosed is returned when a channel sink is written to after
// being closed.
var ErrChannelSinkClosed = errors.New("vitalsync: channel sink closed")

// ReadingBatchSink is the function form of a trend sink.
type ReadingBatchSink func([]Reading) error

// NewCallbackSink adapts a function into a full trend sink so callers can
// receive reading batches without defining structs.
func NewCallbackSink(name string, fn ReadingBatchSink) ports.ReadingSink {
	if name == "" {
		name = "callback"
	}
	return &callbackSink{name: name, fn: fn}
}

// NewChannelSink exposes reading batches via a channel; it returns the sink,
// the read-only channel, and a close function for shutdown.
func NewChannelSink(name string, buffer int) (ports.ReadingSink, <-chan []Reading, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan []Reading, buffer)
	s := &channelSink{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return s, ch, func() { s.close() }
}

type callbackSink struct {
	name string
	fn   ReadingBatchSink
}

func (s *callbackSink) WriteBatch(readings []domain.ParameterReading) error {
	if s.fn == nil {
		return fmt.Errorf("callback sink %q: nil handler", s.name)
	}
	if len(readings) == 0 {
		return nil
	}
	return s.fn(copyBatch(readings))
}

func (s *callbackSink) Name() string { return s.name }

type channelSink struct {
	name   string
	ch     chan []Reading
	closed chan struct{}
	once   sync.Once
}

func (s *channelSink) WriteBatch(readings []domain.ParameterReading) error {
	select {
	case <-s.closed:
		return ErrChannelSinkClosed
	default:
	}

	if len(readings) == 0 {
		return nil
	}

	batch := copyBatch(readings)

	select {
	case <-s.closed:
		return ErrChannelSinkClosed
	case s.ch <- batch:
		return nil
	}
}

func (s *channelSink) Name() string { return s.name }

func (s *channelSink) close() {
	s.once.Do(func() {
		close(s.closed)
		close(s.ch)
	})
}

// copyBatch detaches the router's reusable batch slice from the caller.
func copyBatch(readings []domain.ParameterReading) []Reading {
	out := make([]Reading, len(readings))
	copy(out, readings)
	return out
}
