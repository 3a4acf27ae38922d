// Package auth resolves credentials into identities and issues token pairs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/metrics"
)

// Service defines the access gate operations
type Service interface {
	// Authenticate resolves an access token into the identity of its subject.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
	// Reissue rotates a refresh token into a fresh pair. The presented token
	// must equal the one stored for its subject.
	Reissue(ctx context.Context, refreshToken string) (TokenPair, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Logout(ctx context.Context, identity *domain.Identity) error
	// Invalidate drops a cached identity after the user record changed.
	Invalidate(userID string)
}

// UserRepository defines user operations needed by the access gate
type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, userID, token string) error
	RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error)
}

// PasswordComparer checks a plaintext password against a stored digest
type PasswordComparer interface {
	Compare(plaintext, digest string) (bool, error)
}

// LoginInput accepts either a username or an email
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful login
type Session struct {
	User   *domain.Identity `json:"user"`
	Tokens TokenPair        `json:"-"`
}

// CacheConfig sizes the identity cache. A zero Size disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type service struct {
	users     UserRepository
	tokens    *TokenManager
	passwords PasswordComparer
	cache     *identityCache
}

// NewService creates the access gate
func NewService(users UserRepository, tokens *TokenManager, passwords PasswordComparer, cache CacheConfig) Service {
	return &service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		cache:     newIdentityCache(cache.Size, cache.TTL),
	}
}

func (s *service) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.tokens.VerifyAccess(token)
	if err != nil {
		return nil, err
	}

	if identity, ok := s.cache.Get(claims.Subject); ok {
		return identity, nil
	}

	u, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidAccessToken
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	identity := u.Identity()
	s.cache.Set(identity)
	return identity, nil
}

func (s *service) Reissue(ctx context.Context, refreshToken string) (TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		metrics.AuthEvents.WithLabelValues(metrics.AuthRefreshFail).Inc()
		log.Debug(LogMsgRefreshRejected, "error", err)
		return TokenPair{}, err
	}

	u, err := s.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthEvents.WithLabelValues(metrics.AuthRefreshFail).Inc()
			return TokenPair{}, domain.ErrInvalidRefreshToken
		}
		return TokenPair{}, fmt.Errorf("failed to resolve refresh subject: %w", err)
	}
	if u.RefreshToken != refreshToken {
		metrics.AuthEvents.WithLabelValues(metrics.AuthRefreshFail).Inc()
		log.Info(LogMsgRefreshRejected, logger.AttrKeyUserID, u.ID)
		return TokenPair{}, domain.ErrRefreshTokenUsed
	}

	pair, err := s.tokens.IssuePair(u.Identity())
	if err != nil {
		return TokenPair{}, err
	}
	rotated, err := s.users.RotateRefreshToken(ctx, u.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if !rotated {
		// Another request rotated the same token first
		metrics.AuthEvents.WithLabelValues(metrics.AuthRefreshFail).Inc()
		return TokenPair{}, domain.ErrRefreshTokenUsed
	}

	metrics.AuthEvents.WithLabelValues(metrics.AuthRefresh).Inc()
	log.Debug(LogMsgTokenReissued, logger.AttrKeyUserID, u.ID)
	return pair, nil
}

func (s *service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	username := domain.FoldIdentifier(in.Username)
	email := domain.FoldIdentifier(in.Email)
	if username == "" && email == "" {
		return nil, domain.ErrUsernameOrEmail
	}

	u, err := s.lookup(ctx, username, email)
	if err != nil {
		return nil, err
	}

	ok, err := s.passwords.Compare(in.Password, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.AuthEvents.WithLabelValues(metrics.AuthLoginFailed).Inc()
		logger.FromContext(ctx).Info(LogMsgLoginFailed, logger.AttrKeyUserID, u.ID)
		return nil, domain.ErrInvalidCredentials
	}

	identity := u.Identity()
	pair, err := s.tokens.IssuePair(identity)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	metrics.AuthEvents.WithLabelValues(metrics.AuthLogin).Inc()
	logger.FromContext(ctx).Info(LogMsgLoginSucceeded, logger.AttrKeyUserID, u.ID)
	return &Session{User: identity, Tokens: pair}, nil
}

// lookup tries the username first and falls back to the email.
func (s *service) lookup(ctx context.Context, username, email string) (*domain.User, error) {
	if username != "" {
		u, err := s.users.GetUserByUsername(ctx, username)
		if err == nil || !errors.Is(err, domain.ErrNotFound) || email == "" {
			return u, err
		}
	}
	return s.users.GetUserByEmail(ctx, email)
}

func (s *service) Logout(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrMissingIdentity
	}
	if err := s.users.SetRefreshToken(ctx, identity.ID, ""); err != nil {
		return err
	}
	s.cache.Invalidate(identity.ID)
	metrics.AuthEvents.WithLabelValues(metrics.AuthLogout).Inc()
	logger.FromContext(ctx).Info(LogMsgLoggedOut, logger.AttrKeyUserID, identity.ID)
	return nil
}

func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}
