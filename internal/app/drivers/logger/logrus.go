package logger

import (
	"konsulin-assessment-engine/internal/app/config"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the access logger used by the request logging
// middleware. Production writes JSON lines to the access log file.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(driverConfig.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if internalConfig.App.Env != "production" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return logger
	}

	logger.SetFormatter(&logrus.JSONFormatter{})
	file, err := os.OpenFile(driverConfig.Logger.AccessLogFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logger.WithError(err).Warn("Failed to open access log file, using stderr")
		return logger
	}
	logger.SetOutput(file)
	return logger
}
