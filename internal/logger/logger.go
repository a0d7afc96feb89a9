// Package logger builds the logrus logger shared by every package in the service.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger configured from the environment.
// LOG_LEVEL selects the level (default info); APP_ENV=production switches to JSON output.
func NewLogger() *logrus.Logger {
	return newLogger(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
}

func newLogger(out io.Writer, level, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(env, "production") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	l.SetLevel(logrus.InfoLevel)
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			l.SetLevel(lvl)
		} else {
			l.Warnf("Unknown LOG_LEVEL '%s', using info", level)
		}
	}

	return l
}
