package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// AccessClaims are carried by access tokens. Subject is the user id.
type AccessClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens. Subject is the user id and
// ID is unique per issuance so two refresh tokens never compare equal.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenPair is a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenManager signs and verifies HS256 tokens with separate access and refresh secrets
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager creates a token manager. Both secrets are required and must differ.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New(ErrMsgSecretRequired)
	}
	if accessSecret == refreshSecret {
		return nil, errors.New(ErrMsgSecretsEqual)
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

func (m *TokenManager) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		ID:        domain.NewID(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// IssueAccess signs an access token for u
func (m *TokenManager) IssueAccess(u *domain.Identity) (string, error) {
	claims := &AccessClaims{
		Email:            u.Email,
		Username:         u.Username,
		Fullname:         u.Fullname,
		RegisteredClaims: m.registered(u.ID, m.accessTTL),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefresh signs a refresh token for userID
func (m *TokenManager) IssueRefresh(userID string) (string, error) {
	claims := &RefreshClaims{RegisteredClaims: m.registered(userID, m.refreshTTL)}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// IssuePair mints both tokens for u
func (m *TokenManager) IssuePair(u *domain.Identity) (TokenPair, error) {
	access, err := m.IssueAccess(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.IssueRefresh(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks signature and expiry and returns the claims.
// Every failure is domain.ErrInvalidAccessToken.
func (m *TokenManager) VerifyAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(token, claims, m.accessSecret); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidAccessToken, err)
	}
	return claims, nil
}

// VerifyRefresh checks signature and expiry and returns the claims.
// Every failure is domain.ErrInvalidRefreshToken.
func (m *TokenManager) VerifyRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(token, claims, m.refreshSecret); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRefreshToken, err)
	}
	return claims, nil
}

func (m *TokenManager) parse(token string, claims jwt.Claims, secret []byte) error {
	if token == "" {
		return errors.New(ErrMsgTokenMissing)
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return errors.New(ErrMsgTokenInvalid)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return errors.New(ErrMsgTokenNoSubject)
	}
	return nil
}
