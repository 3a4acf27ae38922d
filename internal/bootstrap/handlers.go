package bootstrap

import (
	"fmt"

	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/handler"
	"github.com/tubehub/tubehub-api/internal/server"
)

// InitializeHandlers builds the route handlers the server mounts
func InitializeHandlers(cfg *config.Config, svc *Services) (server.Handlers, error) {
	uploads, err := handler.NewUploads(cfg.UploadDir)
	if err != nil {
		return server.Handlers{}, fmt.Errorf("%s: %w", ErrMsgUploadDirFailed, err)
	}

	cookies := handler.CookieConfig{
		Secure:     cfg.CookieSecure,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	return server.Handlers{
		Users:         handler.NewUserHandlers(svc.User, svc.Auth, svc.Projection, uploads, cookies),
		Videos:        handler.NewVideoHandlers(svc.Video, svc.Projection, uploads),
		Comments:      handler.NewCommentHandlers(svc.Comment, svc.Projection),
		Likes:         handler.NewLikeHandlers(svc.Engagement, svc.Projection),
		Tweets:        handler.NewTweetHandlers(svc.Tweet, svc.Projection),
		Subscriptions: handler.NewSubscriptionHandlers(svc.Engagement, svc.Projection),
		Playlists:     handler.NewPlaylistHandlers(svc.Playlist, svc.Projection),
		Dashboard:     handler.NewDashboardHandlers(svc.Projection),
	}, nil
}

// ServerConfig projects the HTTP settings out of the application config
func ServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Port:           cfg.Port,
		CORSOrigins:    cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AuthRateLimit:  cfg.AuthRateLimit,
		TrustedProxies: cfg.TrustedProxies,
		WriteTimeout:   cfg.WriteTimeout,
	}
}
