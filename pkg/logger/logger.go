package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the package logger. Unknown levels fall back to info and
// unknown formats to text.
func Init(level, format string) error {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	l.SetOutput(os.Stdout)
	log = l

	return nil
}

// SetOutput redirects the logger, mostly for tests.
func SetOutput(w io.Writer) {
	if log != nil {
		log.SetOutput(w)
	}
}

// WithFields returns an entry carrying fields. Before Init it writes to a
// throwaway logger so callers never need a nil check.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard.WithFields(fields)
	}
	return log.WithFields(fields)
}

func Info(args ...interface{}) {
	if log != nil {
		log.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if log != nil {
		log.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if log != nil {
		log.Warnf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if log != nil {
		log.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	}
}

func Fatalf(format string, args ...interface{}) {
	if log != nil {
		log.Fatalf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", args...)
		os.Exit(1)
	}
}
