package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus.Logger from a LogConfig: text formatting
// for interactive terminal use, or JSON formatting for log aggregation
// pipelines — the same level/format split tazjin-nixery's logrus setup
// applies, generalized from a single global logger to a new instance
// per call so tests can build throwaway loggers freely.
func NewLogger(cfg LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
