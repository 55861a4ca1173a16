// api/config/logger.go
package config

import (
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

func InitLogger() {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.SetLevel(logrus.InfoLevel)
	if levelStr := Getenv("LOG_LEVEL", ""); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			Logger.SetLevel(level)
		}
	}
}
