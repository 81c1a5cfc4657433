package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	// Logger receives all reported errors and panics.
	Logger zerolog.Logger
	// Verbose enables stack trace output for panics.
	Verbose bool
}

// NewLogHandler returns a handler logging to stderr.
func NewLogHandler() *LogHandler {
	return &LogHandler{
		Logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// HandleError logs a MotionError.
func (h *LogHandler) HandleError(err *MotionError) {
	if err == nil {
		return
	}
	ev := h.Logger.Warn().
		Str("op", err.Op).
		Stringer("kind", err.Kind)
	if err.Key != "" {
		ev = ev.Str("key", err.Key)
	}
	ev.Err(err.Err).Msg("motion error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
