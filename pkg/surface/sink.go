package surface

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/go-drift/motion/pkg/errors"
)

// Sink receives every frame applied to a surface. Publish is called from
// the animation tick and should not block for long.
type Sink interface {
	Publish(f Frame) error
	Close() error
}

// SinkFunc adapts a function to Sink. Close is a no-op.
type SinkFunc func(f Frame) error

// Publish calls fn.
func (fn SinkFunc) Publish(f Frame) error { return fn(f) }

// Close does nothing.
func (SinkFunc) Close() error { return nil }

// Fanout publishes to several sinks. A failing sink does not stop the
// others; their errors are joined.
type Fanout struct {
	mu    sync.RWMutex
	sinks []Sink
}

// NewFanout returns a fanout over sinks. Nil sinks are skipped.
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		f.Add(s)
	}
	return f
}

// Add appends s.
func (f *Fanout) Add(s Sink) {
	if s == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, s)
}

// Len returns the number of sinks.
func (f *Fanout) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sinks)
}

// Publish sends fr to every sink.
func (f *Fanout) Publish(fr Frame) error {
	f.mu.RLock()
	sinks := append([]Sink(nil), f.sinks...)
	f.mu.RUnlock()

	var errs []error
	for _, s := range sinks {
		if err := s.Publish(fr); err != nil {
			log.Debug().Err(err).Str("element", fr.Element).Uint64("seq", fr.Seq).Msg("publish frame")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (f *Fanout) Close() error {
	f.mu.Lock()
	sinks := f.sinks
	f.sinks = nil
	f.mu.Unlock()

	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
