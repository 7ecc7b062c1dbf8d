package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns the diagnostic logger handed to the converter.
// Quiet wins over verbose; the default level still shows warnings such as
// image type fallbacks.
func newLogger(w io.Writer, verbose, quiet bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
