package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
)

// Authenticator resolves an access token into an identity
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// ErrorResponder writes err to the client in the API's error envelope
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// AccessGate attaches the caller's identity to the request context
type AccessGate struct {
	auth   Authenticator
	reject ErrorResponder
}

// NewAccessGate creates the access gate middleware
func NewAccessGate(a Authenticator, reject ErrorResponder) *AccessGate {
	return &AccessGate{auth: a, reject: reject}
}

// Require rejects the request with 401 unless it carries a valid access token
func (g *AccessGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := AccessToken(r)
		if token == "" {
			g.reject(w, r, domain.ErrMissingIdentity)
			return
		}

		identity, err := g.auth.Authenticate(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug(LogMsgAccessDenied, "path", r.URL.Path, "error", err)
			g.reject(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// Optional attaches an identity when a valid token is present and otherwise
// lets the request through anonymously
func (g *AccessGate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := AccessToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := g.auth.Authenticate(r.Context(), token)
		if err != nil {
			logger.FromContext(r.Context()).Debug(LogMsgAnonymousFallback, "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	})
}

// AccessToken extracts the access token from the accessToken cookie,
// falling back to an Authorization: Bearer header
func AccessToken(r *http.Request) string {
	if ck, err := r.Cookie(auth.CookieAccessToken); err == nil && ck.Value != "" {
		return ck.Value
	}
	header := r.Header.Get(HeaderAuthorization)
	if len(header) > len(BearerPrefix) && strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(header[len(BearerPrefix):])
	}
	return ""
}
