package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"suryayoga/internal/i18n"
	"suryayoga/internal/models"
	"suryayoga/internal/repository"
	"suryayoga/internal/security"
	"suryayoga/internal/token"
)

// Sentinel errors the handlers map to HTTP statuses and bilingual messages.
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotVerified     = errors.New("email not verified")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrEmailDispatch   = errors.New("failed to send email")
)

// AuthService implements registration, login and the two email-token flows.
// It owns no HTTP concerns; handlers translate its sentinel errors.
type AuthService struct {
	users    *repository.UserRepository
	tokens   *token.Service
	email    *EmailService
	adminKey string
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, tokens *token.Service, email *EmailService, adminKey string) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		email:    email,
		adminKey: adminKey,
	}
}

// Register creates an unverified account and sends the verification email.
// When the email cannot be sent the account still exists but is unusable
// until a later verification succeeds, and ErrEmailDispatch is returned so
// the caller can tell the user to retry.
func (s *AuthService) Register(ctx context.Context, username, email, password string, lang i18n.Lang) (*models.User, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The uniqueness checks and the insert run in one transaction so two
	// simultaneous registrations cannot both claim the same email.
	user, err := s.users.CreateUserUnique(username, email, hash)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	verificationToken, err := s.tokens.IssuePurposeToken(email, token.PurposeEmailVerification)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}

	if err := s.email.SendVerificationEmail(ctx, email, verificationToken, lang); err != nil {
		log.Printf("Verification email failed for %s: %v", email, err)
		return nil, ErrEmailDispatch
	}

	log.Printf("User registered: id=%d email=%s", user.ID, user.Email)
	return user, nil
}

// Login checks credentials and opens a session. Unverified accounts are
// rejected before the password check.
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, "", time.Time{}, ErrNotVerified
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", time.Time{}, ErrInvalidPassword
	}

	sessionToken, sessionID, expiresAt, err := s.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to issue session: %w", err)
	}

	log.Printf("User logged in: id=%d session=%s", user.ID, sessionID)
	return user, sessionToken, expiresAt, nil
}

// Logout revokes the session behind the token. Best effort; a missing
// session is not an error.
func (s *AuthService) Logout(sessionID string) error {
	return s.tokens.RevokeSession(sessionID)
}

// VerifyEmail consumes a verification token and flips the account verified
func (s *AuthService) VerifyEmail(verificationToken string) error {
	email, ok := s.tokens.VerifyPurposeToken(verificationToken, token.PurposeEmailVerification)
	if !ok {
		return ErrInvalidToken
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	updated, err := s.users.MarkVerified(email)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	log.Printf("Email verified: %s", email)
	return nil
}

// ForgotPassword sends a reset link when the email belongs to an account.
// The caller receives nil either way, so responses do not reveal which
// emails are registered. Send failures are logged, not surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string, lang i18n.Lang) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	resetToken, err := s.tokens.IssuePurposeToken(email, token.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := s.email.SendPasswordResetEmail(ctx, email, resetToken, lang); err != nil {
		log.Printf("Password reset email failed for %s: %v", email, err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	email, ok := s.tokens.VerifyPurposeToken(resetToken, token.PurposePasswordReset)
	if !ok {
		return ErrInvalidToken
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.users.UpdatePassword(email, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}

	// Anyone holding an old session loses it along with the old password.
	if err := s.tokens.RevokeUserSessions(user.ID); err != nil {
		log.Printf("Failed to revoke sessions for %s: %v", email, err)
	}

	log.Printf("Password reset for %s", email)
	return nil
}

// MakeAdmin promotes a user when the caller presents the configured admin
// key. Used once at setup time to bootstrap the first admin.
func (s *AuthService) MakeAdmin(adminKey, email string) error {
	if s.adminKey == "" || adminKey != s.adminKey {
		return ErrInvalidToken
	}

	promoted, err := s.users.PromoteToAdmin(email)
	if err != nil {
		return err
	}
	if !promoted {
		return ErrUserNotFound
	}

	log.Printf("User promoted to admin: %s", email)
	return nil
}

// CurrentUser re-reads the user behind a session payload. The token layer
// already insists on a live verified user, but /api/me reports fresh data.
func (s *AuthService) CurrentUser(userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsVerified {
		return nil, ErrUserNotFound
	}
	return user, nil
}
