// Package logging builds the zap logger used by the command line and adapts
// it to the key/value Logger the repositories accept.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps debug|info|warn|error to a zap level. Anything else is info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a zap logger writing to stderr. format is "json"
// (default) or "console". serviceName and the host name are attached to
// every entry.
func NewLogger(level, format, serviceName string) *zap.Logger {
	return NewWriterLogger(os.Stderr, level, format, serviceName)
}

// NewWriterLogger is NewLogger writing to w.
func NewWriterLogger(w io.Writer, level, format, serviceName string) *zap.Logger {
	var enc zapcore.Encoder
	if format == "console" {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "timestamp"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(ParseLevel(level)))
	return withServiceFields(zap.New(core, zap.AddCaller()), serviceName)
}

func withServiceFields(l *zap.Logger, serviceName string) *zap.Logger {
	if serviceName != "" {
		l = l.With(zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		l = l.With(zap.String("hostname", hostname))
	}
	return l
}

// Logger adapts a zap logger to Debug/Info/Warn/Error(msg, keysAndValues...).
type Logger struct {
	s *zap.SugaredLogger
}

// Wrap adapts l. A nil l yields a logger that discards everything.
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Logger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }

// With returns a logger carrying the extra key/value pairs.
func (l *Logger) With(args ...any) *Logger { return &Logger{s: l.s.With(args...)} }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.s.Sync() }
