package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger is the logger type used across the bot.
type Logger = *logrus.Logger

// Fields represents structured logging fields.
type Fields = logrus.Fields

// New creates a configured logger instance. Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// NewWithComponent creates a logger entry tagged with a component field,
// so every line from a pipeline stage identifies its origin.
func NewWithComponent(level, component string) *logrus.Entry {
	return New(level).WithField("component", component)
}
