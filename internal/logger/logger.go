// Package logger provides the append-only alert log.
//
// Every line has the form
//
//	[YYYY-MM-DD HH:MM:SS] <message>
//
// The log is the only mutable resource shared between concurrent response
// tasks. Each write is an independent append; interleaved lines across
// tasks are acceptable and no cross-task ordering is guaranteed. The
// handle is passed explicitly to every component that logs, there is no
// hidden global file handle.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is an append-only alert log handle.
type Log struct {
	l *logrus.Logger
	f *os.File
}

// lineFormatter renders entries as "[timestamp] message" lines.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] %s\n", e.Time.Format("2006-01-02 15:04:05"), e.Message)), nil
}

// Open opens (or creates) the log file in append mode.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(lineFormatter{})
	// Write failures go to logrus's local error reporting (stderr), they
	// never propagate to callers.
	return &Log{l: l, f: f}, nil
}

// Discard returns a log handle that drops everything. Used by tests and
// as a last resort when the log file cannot be opened.
func Discard() *Log {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(lineFormatter{})
	return &Log{l: l}
}

// Print appends one message line.
func (lg *Log) Print(message string) {
	lg.l.Info(message)
}

// Printf appends one formatted message line.
func (lg *Log) Printf(format string, args ...any) {
	lg.l.Infof(format, args...)
}

// Close closes the underlying file, if any.
func (lg *Log) Close() error {
	if lg.f != nil {
		return lg.f.Close()
	}
	return nil
}
