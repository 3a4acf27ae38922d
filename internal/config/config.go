package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	ServiceName string
	Version     string

	// Logging; empty values defer to the environment preset
	LogLevel  string
	LogFormat string

	// Database
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxConns     int
	DBMinConns     int
	DBMaxConnLife  time.Duration
	MigrateOnStart bool

	// Tokens
	AccessTokenSecret  string
	AccessTokenTTL     time.Duration
	RefreshTokenSecret string
	RefreshTokenTTL    time.Duration
	CookieSecure       bool
	BcryptCost         int
	IdentityCacheSize  int
	IdentityCacheTTL   time.Duration

	// HTTP surface
	CORSOrigins    []string
	MaxBodyBytes   int64
	MaxUploadBytes int64
	WriteTimeout   time.Duration
	UploadDir      string
	AuthRateLimit  int
	TrustedProxies []string

	// Media store
	MediaEndpoint  string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaUseSSL    bool
	MediaPublicURL string
	MediaTimeout   time.Duration
	FFProbeTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", EnvDev),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		LogLevel:    strings.ToLower(os.Getenv("LOG_LEVEL")),
		LogFormat:   strings.ToLower(os.Getenv("LOG_FORMAT")),

		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "tubehub"),
		DBMaxConns:     getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMinConns:     getEnvAsInt("DB_MIN_CONNS", DefaultDBMinConns),
		DBMaxConnLife:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLife),
		MigrateOnStart: getEnvAsBool("MIGRATE_ON_START", true),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		AccessTokenTTL:     getEnvAsDuration("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenTTL),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		RefreshTokenTTL:    getEnvAsDuration("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenTTL),
		CookieSecure:       getEnvAsBool("COOKIE_SECURE", true),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),
		IdentityCacheSize:  getEnvAsInt("IDENTITY_CACHE_SIZE", DefaultIdentityCacheSize),
		IdentityCacheTTL:   getEnvAsDuration("IDENTITY_CACHE_TTL", DefaultIdentityCacheTTL),

		CORSOrigins:    getEnvAsList("CORS_ORIGIN", []string{"*"}),
		MaxBodyBytes:   int64(getEnvAsInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		WriteTimeout:   getEnvAsDuration("HTTP_WRITE_TIMEOUT", DefaultWriteTimeout),
		UploadDir:      getEnv("UPLOAD_DIR", os.TempDir()),
		AuthRateLimit:  getEnvAsInt("AUTH_RATE_LIMIT", DefaultAuthRateLimit),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES", nil),

		MediaEndpoint:  getEnv("MEDIA_ENDPOINT", "localhost:9000"),
		MediaAccessKey: getEnv("MEDIA_ACCESS_KEY", ""),
		MediaSecretKey: getEnv("MEDIA_SECRET_KEY", ""),
		MediaBucket:    getEnv("MEDIA_BUCKET", "tubehub"),
		MediaUseSSL:    getEnvAsBool("MEDIA_USE_SSL", false),
		MediaPublicURL: getEnv("MEDIA_PUBLIC_URL", ""),
		MediaTimeout:   getEnvAsDuration("MEDIA_TIMEOUT", DefaultMediaTimeout),
		FFProbeTimeout: getEnvAsDuration("FFPROBE_TIMEOUT", DefaultFFProbeTimeout),
	}

	portStr := getEnv("PORT", "8000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET environment variables must be set for security")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration accepts Go duration strings ("15m", "240h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDev || c.Environment == "development"
}
