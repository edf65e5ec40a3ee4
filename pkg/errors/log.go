package errors

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
//
// An apply failure usually repeats on every frame until the surface comes
// back. With a non-zero Window, an error identical to one logged less than
// Window ago is counted instead of logged; the count is attached to the
// next event logged for it as "repeats".
type LogHandler struct {
	// Verbose adds stack traces to panic events.
	Verbose bool
	// Logger receives the events. The zero value logs JSON to stderr.
	Logger *zerolog.Logger
	// Window collapses identical errors. Zero logs every error.
	Window time.Duration

	mu     sync.Mutex
	recent map[errorKey]*seen
}

type errorKey struct {
	op       string
	kind     Kind
	property string
	msg      string
}

type seen struct {
	at      time.Time
	repeats int
}

func (h *LogHandler) logger() *zerolog.Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Logger == nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		h.Logger = &l
	}
	return h.Logger
}

// admit reports whether err should be logged, and how many identical errors
// were swallowed since the last one that was.
func (h *LogHandler) admit(err *Error) (bool, int) {
	if h.Window <= 0 {
		return true, 0
	}
	key := errorKey{op: err.Op, kind: err.Kind, property: err.Property}
	if err.Err != nil {
		key.msg = err.Err.Error()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.recent == nil {
		h.recent = make(map[errorKey]*seen)
	}
	s, ok := h.recent[key]
	if ok && err.Timestamp.Sub(s.at) < h.Window {
		s.repeats++
		return false, 0
	}
	repeats := 0
	if ok {
		repeats = s.repeats
	}
	h.recent[key] = &seen{at: err.Timestamp}
	return true, repeats
}

// HandleError logs an Error at warn level.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	log, repeats := h.admit(err)
	if !log {
		return
	}
	ev := h.logger().Warn().
		Err(err.Err).
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Time("at", err.Timestamp)
	if err.Property != "" {
		ev = ev.Str("property", err.Property)
	}
	if repeats > 0 {
		ev = ev.Int("repeats", repeats)
	}
	ev.Msg("motion error")
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Interface("value", err.Value).
		Str("op", err.Op)
	if !err.Frame.IsZero() {
		ev = ev.Time("frame", err.Frame)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("motion panic")
}
