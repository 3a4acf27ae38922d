package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
// Concrete types are kept because one store often satisfies several of the
// narrow interfaces the services declare.
type Repositories struct {
	User         *postgres.UserRepository
	Video        *postgres.VideoRepository
	Comment      *postgres.CommentRepository
	Tweet        *postgres.TweetRepository
	Playlist     *postgres.PlaylistRepository
	Like         *postgres.LikeRepository
	Subscription *postgres.SubscriptionRepository
	Projection   *postgres.ProjectionRepository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         postgres.NewUserRepository(dbPool),
		Video:        postgres.NewVideoRepository(dbPool),
		Comment:      postgres.NewCommentRepository(dbPool),
		Tweet:        postgres.NewTweetRepository(dbPool),
		Playlist:     postgres.NewPlaylistRepository(dbPool),
		Like:         postgres.NewLikeRepository(dbPool),
		Subscription: postgres.NewSubscriptionRepository(dbPool),
		Projection:   postgres.NewProjectionRepository(dbPool),
	}
}
