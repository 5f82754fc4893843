// Package token issues and verifies the two kinds of signed tokens the
// backend uses: session tokens that ride in the auth cookie, and short
// lived purpose tokens embedded in verification and password reset links.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"suryayoga/internal/models"
	"suryayoga/internal/repository"
	"suryayoga/internal/security"
)

// Purposes a purpose token can be scoped to. A token minted for one purpose
// never verifies under the other.
const (
	PurposeEmailVerification = "email_verification"
	PurposePasswordReset     = "password_reset"
)

// SessionPayload is the identity carried by a valid session token
type SessionPayload struct {
	UserID    int64  `json:"userId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type sessionClaims struct {
	UserID    int64  `json:"userId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

type purposeClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Service signs tokens with an HMAC secret and cross-checks session tokens
// against live session and user rows, so deleting a session (or a user
// losing verified status) revokes the token immediately.
type Service struct {
	secret     []byte
	sessions   *repository.SessionRepository
	users      *repository.UserRepository
	sessionTTL time.Duration
	purposeTTL time.Duration
}

// NewService creates a token service
func NewService(secret string, sessions *repository.SessionRepository, users *repository.UserRepository, sessionTTL, purposeTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		sessions:   sessions,
		users:      users,
		sessionTTL: sessionTTL,
		purposeTTL: purposeTTL,
	}
}

// IssueSessionToken creates a session row and returns a signed token bound
// to it, along with the session id and expiry.
func (s *Service) IssueSessionToken(user *models.User) (string, string, time.Time, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionTTL)

	if err := s.sessions.CreateSession(sessionID, user.ID, expiresAt); err != nil {
		return "", "", time.Time{}, err
	}

	claims := sessionClaims{
		UserID:    user.ID,
		SessionID: sessionID,
		Email:     user.Email,
		Username:  user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, sessionID, expiresAt, nil
}

// VerifySessionToken returns the payload of a valid session token, or nil.
// A token is valid only while its signature checks out, it has not expired,
// its session row is still alive, and its user still exists and is verified.
func (s *Service) VerifySessionToken(tokenString string) *SessionPayload {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}

	session, err := s.sessions.GetSession(claims.SessionID)
	if err != nil || session == nil || session.UserID != claims.UserID {
		return nil
	}

	user, err := s.users.GetUserByID(claims.UserID)
	if err != nil || user == nil || !user.IsVerified {
		return nil
	}

	return &SessionPayload{
		UserID:    user.ID,
		SessionID: session.ID,
		Email:     user.Email,
		Username:  user.Username,
	}
}

// RevokeSession deletes the backing session row, invalidating every copy of
// the token at once.
func (s *Service) RevokeSession(sessionID string) error {
	return s.sessions.DeleteSession(sessionID)
}

// RevokeUserSessions logs a user out everywhere by deleting all their
// session rows.
func (s *Service) RevokeUserSessions(userID int64) error {
	return s.sessions.DeleteSessionsForUser(userID)
}

// IssuePurposeToken mints a stateless token binding an email to a purpose
func (s *Service) IssuePurposeToken(email, purpose string) (string, error) {
	claims := purposeClaims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.purposeTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyPurposeToken returns the email bound into a valid token of the
// expected purpose. A mismatched purpose fails even when the signature is
// good.
func (s *Service) VerifyPurposeToken(tokenString, purpose string) (string, bool) {
	claims := &purposeClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", false
	}
	if claims.Purpose != purpose || claims.Email == "" {
		return "", false
	}
	return claims.Email, true
}

func (s *Service) keyFunc(t *jwt.Token) (interface{}, error) {
	return s.secret, nil
}
