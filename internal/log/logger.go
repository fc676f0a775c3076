// Package log wraps logrus behind the small package-level surface the rest
// of declutter uses. Interactive prompt text never goes through here; this is
// diagnostics only and writes to stderr so it cannot interleave with the
// per-file prompt line.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// SetVerbose raises the level to debug when verbose is requested.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// SetOutput redirects log output, used by tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs a formatted debug message
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info logs a formatted info message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// WithField returns an entry carrying a structured field, for call sites
// that want key=value context rather than format strings.
func WithField(key string, value interface{}) *logrus.Entry {
	return logger.WithField(key, value)
}
