// Package logging builds the INFO/ERROR loggers used by the formkit CLI.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-formkit/internal/config"
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

// Loggers groups the prefixed loggers sharing one writer.
type Loggers struct {
	Info  *log.Logger
	Error *log.Logger

	closer io.Closer
	closed bool
}

// New writes to a rotating file when cfg.File is set and to fallback
// otherwise. A nil fallback means stderr.
func New(cfg config.Log, fallback io.Writer) (*Loggers, error) {
	if fallback == nil {
		fallback = os.Stderr
	}
	if cfg.File == "" {
		return newLoggers(fallback, nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, err
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return newLoggers(file, file), nil
}

// Discard returns loggers that drop everything.
func Discard() *Loggers {
	return newLoggers(io.Discard, nil)
}

func newLoggers(w io.Writer, closer io.Closer) *Loggers {
	return &Loggers{
		Info:   log.New(w, "INFO: ", flags),
		Error:  log.New(w, "ERROR: ", flags),
		closer: closer,
	}
}

// Close releases the log file, if any. Further calls are no-ops.
func (l *Loggers) Close() error {
	if l == nil || l.closed {
		return nil
	}
	l.closed = true
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Closed reports whether Close has been called.
func (l *Loggers) Closed() bool {
	return l != nil && l.closed
}
