package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "auth-token"

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// IsSecureRequest determines if the request is over HTTPS.
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	if r.URL.Scheme == "https" {
		return true
	}

	return false
}

// NewAuthCookie builds the session-token cookie. The Secure flag is forced in
// production and otherwise follows the request scheme; domain is set only in
// production so local development keeps host-scoped cookies.
func NewAuthCookie(r *http.Request, token string, expires time.Time, production bool, domain string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   production || IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if production && domain != "" {
		cookie.Domain = domain
	}
	return cookie
}

// DeleteAuthCookie builds a cookie that clears the session token.
func DeleteAuthCookie(r *http.Request, production bool, domain string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production || IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if production && domain != "" {
		cookie.Domain = domain
	}
	return cookie
}
