package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// SetOutput redirects all log lines to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Output(w)
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
// Unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
}

// Logger returns the underlying zerolog logger for components that want
// their own context.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func output(ev *zerolog.Event, msg string, err error, fields Fields) {
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	ev.Msg(msg)
}

// Debug logs a diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	l := Logger()
	output(l.Debug(), msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	l := Logger()
	output(l.Info(), msg, nil, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	l := Logger()
	output(l.Warn(), msg, nil, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	l := Logger()
	output(l.Error(), msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	l := Logger()
	output(l.WithLevel(zerolog.FatalLevel), msg, err, fields)
	os.Exit(1)
}
