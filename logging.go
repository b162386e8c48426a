// logging.go - structured logging for the VM core.
//
// Per-VM configuration (WithLogger), in the same spirit as a pluggable
// logging facade: the VM never hard-codes a logging framework, it
// depends on the small Logger interface below and ships one built-in
// implementation backed by zerolog.
//
// Usage:
//   vmcore.Start(tickMS, sharedSize, argv, vmcore.WithLogger(vmcore.NewZerologLogger(zerolog.New(os.Stderr))))

package vmcore

import (
	"github.com/rs/zerolog"
)

// LogLevel mirrors zerolog's severity levels closely enough that the
// built-in Logger can forward them directly.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is the structured logging interface the VM depends on.
// Category is one of "scheduler", "alarm", "fileio", "mutex", "pool".
type Logger interface {
	LogEvent(level LogLevel, category, message string, fields map[string]any)
}

// noopLogger is the default: logging is opt-in.
type noopLogger struct{}

func (noopLogger) LogEvent(LogLevel, string, string, map[string]any) {}

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	base zerolog.Logger
}

// NewZerologLogger wraps an already-configured zerolog.Logger.
func NewZerologLogger(base zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{base: base}
}

func (z *ZerologLogger) LogEvent(level LogLevel, category, message string, fields map[string]any) {
	ev := z.base.WithLevel(level.zerolog()).Str("category", category)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(message)
}

// logEvent is the VM's internal call site; it never allocates the
// fields map when nil was passed, keeping the common no-op-logger path
// effectively free.
func (vm *VM) logEvent(level LogLevel, category, message string, fields map[string]any) {
	if vm.logger == nil {
		return
	}
	vm.logger.LogEvent(level, category, message, fields)
}
