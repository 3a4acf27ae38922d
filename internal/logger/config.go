package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the baseline for env. Production and staging log
// JSON at info; anything else logs text at debug with source locations.
func ForEnvironment(env, serviceName, version string) Config {
	cfg := Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: serviceName,
		Version:     version,
		Environment: env,
		AddSource:   true,
	}
	switch strings.ToLower(env) {
	case EnvironmentProduction, "production", EnvironmentStaging:
		cfg.Level = LogLevelInfo
		cfg.Format = LogFormatJSON
		cfg.AddSource = false
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	return cfg
}

// Override replaces level and format when they are set.
func (c Config) Override(level, format string) Config {
	if level != "" {
		c.Level = strings.ToLower(level)
	}
	if format != "" {
		c.Format = strings.ToLower(format)
	}
	return c
}

// LogLevel converts the level name to slog.Level, defaulting to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
