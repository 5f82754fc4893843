package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"suryayoga/internal/repository"
	"suryayoga/internal/security"
	"suryayoga/internal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// SessionContextKey holds the *token.SessionPayload of the caller
const SessionContextKey ContextKey = "session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *token.Service
	users   *repository.UserRepository
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *token.Service, users *repository.UserRepository, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		users:   users,
		limiter: limiter,
	}
}

// sessionFromRequest reads and verifies the auth cookie, nil when absent or
// invalid for any reason
func (m *Middleware) sessionFromRequest(r *http.Request) *token.SessionPayload {
	cookie, err := r.Cookie(security.AuthCookieName)
	if err != nil {
		return nil
	}
	return m.tokens.VerifySessionToken(cookie.Value)
}

// RequireAuth rejects requests without a live session with 401
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := m.sessionFromRequest(r)
		if session == nil {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin rejects anonymous callers with 401 and authenticated
// non-admins with 403. The admin flag is re-read from the database on every
// request, so demotion takes effect immediately.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := m.sessionFromRequest(r)
		if session == nil {
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := m.users.GetUserByID(session.UserID)
		if err != nil {
			respondInternalError(w, err)
			return
		}
		if user == nil || !user.IsAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// OptionalAuth attaches the session when one exists but lets anonymous
// requests through. Used where published content is public and drafts need
// an admin.
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session := m.sessionFromRequest(r); session != nil {
			r = r.WithContext(context.WithValue(r.Context(), SessionContextKey, session))
		}
		next(w, r)
	}
}

// RateLimit applies the token bucket per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next(w, r)
	}
}

// IsAdmin reports whether the caller behind the request is an admin. Meant
// for handlers on OptionalAuth routes.
func (m *Middleware) IsAdmin(r *http.Request) bool {
	session := SessionFromContext(r.Context())
	if session == nil {
		return false
	}
	user, err := m.users.GetUserByID(session.UserID)
	if err != nil || user == nil {
		return false
	}
	return user.IsAdmin
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// SessionFromContext retrieves the session payload from the request context
func SessionFromContext(ctx context.Context) *token.SessionPayload {
	session, ok := ctx.Value(SessionContextKey).(*token.SessionPayload)
	if !ok {
		return nil
	}
	return session
}
