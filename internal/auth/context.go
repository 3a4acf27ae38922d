package auth

import (
	"context"

	"github.com/tubehub/tubehub-api/internal/domain"
)

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated identity
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity set by WithIdentity, or nil
func IdentityFromContext(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return identity
}
