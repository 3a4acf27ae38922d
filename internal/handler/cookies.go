package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/tubehub/tubehub-api/internal/auth"
)

// CookieConfig controls how session cookies are issued
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c CookieConfig) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// setSessionCookies writes both tokens as HttpOnly cookies
func (c CookieConfig) setSessionCookies(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, c.cookie(auth.CookieAccessToken, pair.AccessToken, c.AccessTTL))
	http.SetCookie(w, c.cookie(auth.CookieRefreshToken, pair.RefreshToken, c.RefreshTTL))
}

// clearSessionCookies expires both token cookies
func (c CookieConfig) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{auth.CookieAccessToken, auth.CookieRefreshToken} {
		ck := c.cookie(name, "", 0)
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

// refreshToken reads the refreshToken cookie, falling back to the request body value
func refreshToken(r *http.Request, fromBody string) string {
	if ck, err := r.Cookie(auth.CookieRefreshToken); err == nil && ck.Value != "" {
		return ck.Value
	}
	return strings.TrimSpace(fromBody)
}
