package logger

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// VerboseLevel represents the verbosity level for logging
type VerboseLevel int

const (
	// VerboseQuiet hides informational messages; errors still show
	VerboseQuiet VerboseLevel = -1
	// VerboseSilent means no verbose output
	VerboseSilent VerboseLevel = 0
	// VerboseNormal means standard verbose output (-v)
	VerboseNormal VerboseLevel = 1
	// VerboseVery means detailed debugging output (-vv)
	VerboseVery VerboseLevel = 2
)

// Logger handles verbose output at different levels
type Logger struct {
	level VerboseLevel
	zl    *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger creates a new logger writing to stderr with the specified
// verbosity level
func NewLogger(level int) *Logger {
	return New(os.Stderr, level)
}

// New creates a logger writing plain lines to w.
func New(w io.Writer, level int) *Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	zl := zap.New(core)
	return &Logger{level: VerboseLevel(level), zl: zl, sugar: zl.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	zl := zap.NewNop()
	return &Logger{level: VerboseQuiet, zl: zl, sugar: zl.Sugar()}
}

// IsVerbose returns true if verbose mode is enabled (-v or -vv)
func (l *Logger) IsVerbose() bool {
	return l.level >= VerboseNormal
}

// IsVeryVerbose returns true if very verbose mode is enabled (-vv)
func (l *Logger) IsVeryVerbose() bool {
	return l.level >= VerboseVery
}

// V logs a message at verbose level (-v)
func (l *Logger) V(format string, args ...interface{}) {
	if l.IsVerbose() {
		l.sugar.Debugf("[*] "+format, args...)
	}
}

// VV logs a message at very verbose level (-vv)
func (l *Logger) VV(format string, args ...interface{}) {
	if l.IsVeryVerbose() {
		l.sugar.Debugf("[VV] "+format, args...)
	}
}

// Info logs an informational message (hidden when quiet)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level > VerboseQuiet {
		l.sugar.Infof("[+] "+format, args...)
	}
}

// Error logs an error message (always shown)
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf("[!] "+format, args...)
}

// Section logs a section header for very verbose mode
func (l *Logger) Section(title string) {
	if l.IsVeryVerbose() {
		l.sugar.Debugf("\n[VV] === %s ===", title)
	}
}

// Detail logs a detail line for very verbose mode with indentation
func (l *Logger) Detail(format string, args ...interface{}) {
	if l.IsVeryVerbose() {
		l.sugar.Debugf("[VV] → "+format, args...)
	}
}

// StdLog adapts the logger for APIs that take a *log.Logger, such as
// http.Server.ErrorLog. Lines are logged as errors.
func (l *Logger) StdLog() *log.Logger {
	std, err := zap.NewStdLogAt(l.zl.Named("http"), zapcore.ErrorLevel)
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	return std
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}
