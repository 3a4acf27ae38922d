// Package user implements registration and account maintenance.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/media"
	"github.com/tubehub/tubehub-api/internal/metrics"
	"github.com/tubehub/tubehub-api/internal/repository"
)

// Service defines account operations
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	Current(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	UpdateAccount(ctx context.Context, identity *domain.Identity, fullname, email string) (*domain.Identity, error)
	ChangePassword(ctx context.Context, identity *domain.Identity, oldPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error)
	UpdateCoverImage(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error)
}

// RegisterInput is a registration request with staged upload paths
type RegisterInput struct {
	Fullname   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) (bool, error)
}

// IdentityInvalidator drops cached identities after an account change
type IdentityInvalidator interface {
	Invalidate(userID string)
}

type service struct {
	repo      repository.User
	passwords PasswordHasher
	media     media.Store
	cache     IdentityInvalidator
}

// NewService creates a new user service
func NewService(repo repository.User, passwords PasswordHasher, store media.Store, cache IdentityInvalidator) Service {
	return &service{
		repo:      repo,
		passwords: passwords,
		media:     store,
		cache:     cache,
	}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*domain.Identity, error) {
	fullname := strings.TrimSpace(in.Fullname)
	email := domain.FoldIdentifier(in.Email)
	username := domain.FoldIdentifier(in.Username)
	if fullname == "" || email == "" || username == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.ErrAllFieldsMissing
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	taken, err := s.repo.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}
	if in.AvatarPath == "" {
		return nil, domain.ErrAvatarRequired
	}

	avatar, err := s.media.Upload(ctx, in.AvatarPath)
	if err != nil {
		return nil, err
	}
	uploaded := []string{avatar.ID}

	coverURL := ""
	if in.CoverPath != "" {
		cover, err := s.media.Upload(ctx, in.CoverPath)
		if err != nil {
			s.discard(ctx, uploaded...)
			return nil, err
		}
		coverURL = cover.URL
		uploaded = append(uploaded, cover.ID)
	}

	digest, err := s.passwords.Hash(in.Password)
	if err != nil {
		s.discard(ctx, uploaded...)
		return nil, err
	}

	u := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		PasswordHash: digest,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		s.discard(ctx, uploaded...)
		return nil, err
	}

	metrics.AuthEvents.WithLabelValues(metrics.AuthRegistration).Inc()
	logger.FromContext(ctx).Info(LogMsgUserRegistered, logger.AttrKeyUserID, u.ID)
	return u.Identity(), nil
}

func (s *service) Current(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	return identity, nil
}

func (s *service) UpdateAccount(ctx context.Context, identity *domain.Identity, fullname, email string) (*domain.Identity, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	fullname = strings.TrimSpace(fullname)
	email = domain.FoldIdentifier(email)
	if fullname == "" || email == "" {
		return nil, domain.ErrAllFieldsMissing
	}

	u, err := s.repo.UpdateAccount(ctx, identity.ID, fullname, email)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(identity.ID)
	return u.Identity(), nil
}

func (s *service) ChangePassword(ctx context.Context, identity *domain.Identity, oldPassword, newPassword string) error {
	if identity == nil {
		return domain.ErrMissingIdentity
	}
	if oldPassword == "" || strings.TrimSpace(newPassword) == "" {
		return domain.ErrAllFieldsMissing
	}
	if len(newPassword) > domain.MaxPasswordBytes {
		return domain.ErrPasswordTooLong
	}

	u, err := s.repo.GetUserByID(ctx, identity.ID)
	if err != nil {
		return err
	}
	ok, err := s.passwords.Compare(oldPassword, u.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrIncorrectPassword
	}

	digest, err := s.passwords.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, identity.ID, digest); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgPasswordChanged, logger.AttrKeyUserID, identity.ID)
	return nil
}

func (s *service) UpdateAvatar(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error) {
	return s.replaceImage(ctx, identity, path, domain.ErrAvatarRequired, s.repo.UpdateAvatar)
}

func (s *service) UpdateCoverImage(ctx context.Context, identity *domain.Identity, path string) (*domain.Identity, error) {
	return s.replaceImage(ctx, identity, path, domain.ErrCoverRequired, s.repo.UpdateCoverImage)
}

type imageUpdate func(ctx context.Context, userID, url string) (*domain.User, error)

func (s *service) replaceImage(ctx context.Context, identity *domain.Identity, path string, missing error, update imageUpdate) (*domain.Identity, error) {
	if identity == nil {
		return nil, domain.ErrMissingIdentity
	}
	if path == "" {
		return nil, missing
	}

	asset, err := s.media.Upload(ctx, path)
	if err != nil {
		return nil, err
	}
	u, err := update(ctx, identity.ID, asset.URL)
	if err != nil {
		s.discard(ctx, asset.ID)
		return nil, fmt.Errorf("failed to store image url: %w", err)
	}
	s.cache.Invalidate(identity.ID)
	return u.Identity(), nil
}

func (s *service) discard(ctx context.Context, assetIDs ...string) {
	for _, id := range assetIDs {
		if err := s.media.Delete(context.WithoutCancel(ctx), id); err != nil {
			logger.FromContext(ctx).Warn(LogMsgAssetDiscardFailed, "asset_id", id, "error", err)
		}
	}
}
