package config

import "time"

const (
	EnvDev         = "dev"
	EnvProduction  = "production"
	DefaultVersion = "dev"

	DefaultServiceName = "tubehub-api"
)

// Defaults applied when the matching variable is unset or invalid
const (
	DefaultDBMaxConns    = 20
	DefaultDBMinConns    = 2
	DefaultDBMaxConnLife = time.Hour

	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 10 * 24 * time.Hour
	DefaultBcryptCost      = 10

	DefaultIdentityCacheSize = 1000
	DefaultIdentityCacheTTL  = 30 * time.Second

	DefaultMaxBodyBytes   = 16 << 10
	DefaultMaxUploadBytes = 512 << 20
	DefaultWriteTimeout   = 10 * time.Minute
	DefaultAuthRateLimit  = 20

	DefaultMediaTimeout   = 60 * time.Second
	DefaultFFProbeTimeout = 10 * time.Second
)
