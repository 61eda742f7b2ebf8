package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. Output is JSON on stdout so the
// hosting platform can ingest it directly.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
