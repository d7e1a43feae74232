// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures structured diagnostics for paper-tools.
// Components receive a *logrus.Entry at construction instead of consulting
// a shared debug flag; the CLI's --debug flag controls verbosity globally.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
}

// Init sets the global verbosity. With debug enabled every client logs its
// requests, retries, and dropped records.
func Init(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// Component returns a logger entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
