package main

import (
	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/logger"
)

// initLogger picks the environment preset, then applies LOG_LEVEL and LOG_FORMAT
func initLogger(cfg *config.Config) logger.Config {
	loggerConfig := logger.ForEnvironment(cfg.Environment, cfg.ServiceName, cfg.Version).
		Override(cfg.LogLevel, cfg.LogFormat)

	logger.InitLogger(loggerConfig)
	return loggerConfig
}
