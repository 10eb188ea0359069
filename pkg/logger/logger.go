// Package logger provides the process-wide leveled logger. All diagnostic
// output goes to stderr so stdout stays clean for command results.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// SetVerbose switches the logger into debug level.
func SetVerbose(verbose bool) {
	if verbose {
		std.SetLevel(logrus.DebugLevel)
		return
	}
	std.SetLevel(logrus.InfoLevel)
}

// SetQuiet silences everything below the warning level.
func SetQuiet(quiet bool) {
	if quiet {
		std.SetLevel(logrus.WarnLevel)
		return
	}
	std.SetLevel(logrus.InfoLevel)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs a formatted message at warning level.
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}
