//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLogger replaces the logger used by imgo, including the default
// assertion handler. Pass nil to restore the built-in logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = newDefaultLogger()
	}
	logger = l
}

// Logger returns the logger currently used by imgo.
func Logger() logrus.FieldLogger {
	return logger
}

// configureLogging applies cfg to the built-in logger. A logger installed
// with SetLogger is left alone.
func configureLogging(cfg LogConfig) error {
	l, ok := logger.(*logrus.Logger)
	if !ok {
		return nil
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, cfg.Level)
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, cfg.Format)
	}
	return nil
}
