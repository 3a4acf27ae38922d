package bootstrap

import (
	"fmt"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/comment"
	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/engagement"
	"github.com/tubehub/tubehub-api/internal/media"
	"github.com/tubehub/tubehub-api/internal/playlist"
	"github.com/tubehub/tubehub-api/internal/projection"
	"github.com/tubehub/tubehub-api/internal/tweet"
	"github.com/tubehub/tubehub-api/internal/user"
	"github.com/tubehub/tubehub-api/internal/video"
)

// Services holds every application service
type Services struct {
	Auth       auth.Service
	User       user.Service
	Video      video.Service
	Comment    comment.Service
	Tweet      tweet.Service
	Playlist   playlist.Service
	Engagement engagement.Service
	Projection projection.Service
}

// InitializeServices wires services onto their repositories and the media store
func InitializeServices(cfg *config.Config, repos *Repositories, store media.Store) (*Services, error) {
	tokens, err := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgTokenManagerFailed, err)
	}
	passwords := auth.NewPasswordHasher(cfg.BcryptCost)

	authSvc := auth.NewService(repos.User, tokens, passwords, auth.CacheConfig{
		Size: cfg.IdentityCacheSize,
		TTL:  cfg.IdentityCacheTTL,
	})

	return &Services{
		Auth:       authSvc,
		User:       user.NewService(repos.User, passwords, store, authSvc),
		Video:      video.NewService(repos.Video, repos.User, store, authSvc),
		Comment:    comment.NewService(repos.Comment, repos.Video),
		Tweet:      tweet.NewService(repos.Tweet),
		Playlist:   playlist.NewService(repos.Playlist, repos.Video),
		Engagement: engagement.NewService(repos.Like, repos.Subscription, repos.User),
		Projection: projection.NewService(repos.Projection, repos.User, repos.Video, repos.Playlist),
	}, nil
}
