package logger

import (
	"joyeria-checkout/internal/config"

	"github.com/sirupsen/logrus"
)

// New builds the service logger from the LOG_* config block.
func New(cfg *config.Log) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
