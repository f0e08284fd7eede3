package logger

import "go.uber.org/zap"

// Setup returns a development logger for env "development" and a production
// logger otherwise.
func Setup(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
