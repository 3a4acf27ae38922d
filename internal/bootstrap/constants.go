package bootstrap

import "time"

// ShutdownTimeout bounds the graceful shutdown sequence
const ShutdownTimeout = 30 * time.Second

// Log messages for startup
const (
	LogMsgStartingService     = "Starting service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgMediaStoreReady     = "Media store ready"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingDatabase      = "Closing database pool"
	LogMsgServerStopped        = "Server stopped"
)

// Error messages for wiring failures
const (
	ErrMsgMediaClientFailed  = "failed to create media client"
	ErrMsgBucketFailed       = "failed to prepare media bucket"
	ErrMsgTokenManagerFailed = "failed to create token manager"
	ErrMsgUploadDirFailed    = "failed to prepare upload directory"
)
