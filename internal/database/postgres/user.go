package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

const userColumns = `id, username, email, fullname, password_hash, avatar, cover_image,
	watch_history::text[], COALESCE(refresh_token, ''), created_at, updated_at`

// UserRepository implements the user repository for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Fullname, &u.PasswordHash, &u.Avatar,
		&u.CoverImage, &u.WatchHistory, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.WatchHistory = nonNil(u.WatchHistory)
	return &u, nil
}

// CreateUser inserts a new user. Username or email collisions return domain.ErrUserExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = domain.NewID()
	}

	query := `
		INSERT INTO users (id, username, email, fullname, password_hash, avatar, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.Fullname,
		user.PasswordHash, user.Avatar, user.CoverImage).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.WatchHistory = []string{}
	return nil
}

// GetUserByID finds a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, wrapUserErr(err, "failed to get user by id")
	}
	return u, nil
}

// GetUserByUsername finds a user by case-folded username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, wrapUserErr(err, "failed to get user by username")
	}
	return u, nil
}

// GetUserByEmail finds a user by case-folded email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, wrapUserErr(err, "failed to get user by email")
	}
	return u, nil
}

// UserExists reports whether a user with the id exists
func (r *UserRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// UsernameOrEmailTaken reports whether either value is already registered
func (r *UserRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	if err := r.db.QueryRow(ctx, query, username, email).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check username and email: %w", err)
	}
	return taken, nil
}

// UpdateAccount sets fullname and email
func (r *UserRepository) UpdateAccount(ctx context.Context, userID, fullname, email string) (*domain.User, error) {
	query := `
		UPDATE users SET fullname = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, userID, fullname, email))
	if err != nil {
		if isUniqueViolation(err, ConstraintUsersEmail) {
			return nil, domain.ErrUserExists
		}
		return nil, wrapUserErr(err, "failed to update account")
	}
	return u, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateAvatar replaces the avatar URL
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID, url string) (*domain.User, error) {
	query := `UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, userID, url))
	if err != nil {
		return nil, wrapUserErr(err, "failed to update avatar")
	}
	return u, nil
}

// UpdateCoverImage replaces the cover image URL
func (r *UserRepository) UpdateCoverImage(ctx context.Context, userID, url string) (*domain.User, error) {
	query := `UPDATE users SET cover_image = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, query, userID, url))
	if err != nil {
		return nil, wrapUserErr(err, "failed to update cover image")
	}
	return u, nil
}

// SetRefreshToken stores the refresh token, or clears it when token is empty
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = NULLIF($2, '') WHERE id = $1`, userID, token)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// RotateRefreshToken swaps current for next only while current is still the stored token
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token = $3 WHERE id = $1 AND refresh_token = $2`,
		userID, current, next)
	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// AppendWatchHistory moves videoID to the end of the user's watch history
func (r *UserRepository) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	query := `
		UPDATE users
		SET watch_history = array_append(array_remove(watch_history, $2::uuid), $2::uuid)
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

func wrapUserErr(err error, msg string) error {
	return wrapErr(err, domain.ErrUserNotFound, msg)
}
