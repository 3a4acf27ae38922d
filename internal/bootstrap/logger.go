package bootstrap

import (
	"log/slog"

	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/logger"
)

// LogStartup records the effective configuration once the logger is ready.
// Secrets are never logged.
func LogStartup(cfg *config.Config, logCfg logger.Config) {
	slog.Info(LogMsgStartingService,
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
		"log_level", logCfg.Level,
		"log_format", logCfg.Format,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"media_endpoint", cfg.MediaEndpoint,
		"upload_dir", cfg.UploadDir,
		"cookie_secure", cfg.CookieSecure)
}

// LogWarnings reports insecure settings found by config validation
func LogWarnings(warnings []string) {
	for _, w := range warnings {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}
}
