package repository

import (
	"context"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// User defines the interface for user persistence.
// Lookups return domain.ErrUserNotFound when no row matches.
type User interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)

	UpdateAccount(ctx context.Context, userID, fullname, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID, url string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID, url string) (*domain.User, error)

	// SetRefreshToken stores token; an empty token clears it.
	SetRefreshToken(ctx context.Context, userID, token string) error
	// RotateRefreshToken replaces current with next and reports false when current no longer matches.
	RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error)
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}
