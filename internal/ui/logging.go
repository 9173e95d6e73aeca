package ui

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the leveled logger shared by the CLI and the source. Debug
// output is dropped unless Debug is set.
type Logger struct {
	Debug bool
	z     *zap.SugaredLogger
}

// NewLogger writes human-readable lines to stderr, keeping stdout free for
// command output.
func NewLogger(debug bool) *Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	return FromZap(zap.New(core), debug)
}

func FromZap(z *zap.Logger, debug bool) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{Debug: debug, z: z.Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.z.Debugf(format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.z.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.z.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.z.Errorf(format, args...)
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}
