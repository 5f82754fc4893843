package token

import (
	"path/filepath"
	"testing"
	"time"

	"suryayoga/internal/database"
	"suryayoga/internal/models"
	"suryayoga/internal/repository"
)

type testEnv struct {
	svc      *Service
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	db       *database.DB
}

func newTestService(t *testing.T, sessionTTL, purposeTTL time.Duration) testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionRepository(db)
	return testEnv{
		svc:      NewService("test-secret", sessions, users, sessionTTL, purposeTTL),
		users:    users,
		sessions: sessions,
		db:       db,
	}
}

func verifiedUser(t *testing.T, users *repository.UserRepository) *models.User {
	t.Helper()
	user, err := users.CreateUser("anna", "anna@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if _, err := users.MarkVerified(user.Email); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}
	user.IsVerified = true
	return user
}

func TestSessionToken_RoundTrip(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)
	user := verifiedUser(t, env.users)

	signed, sessionID, expiresAt, err := env.svc.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	if sessionID == "" {
		t.Error("Expected a session id")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("Expiry should be in the future")
	}

	payload := env.svc.VerifySessionToken(signed)
	if payload == nil {
		t.Fatal("Expected valid session token")
	}
	if payload.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", payload.UserID, user.ID)
	}
	if payload.SessionID != sessionID {
		t.Errorf("SessionID = %s, want %s", payload.SessionID, sessionID)
	}
	if payload.Email != user.Email || payload.Username != user.Username {
		t.Errorf("Payload identity mismatch: %+v", payload)
	}
}

func TestSessionToken_RevokedSessionFails(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)
	user := verifiedUser(t, env.users)

	signed, sessionID, _, err := env.svc.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if err := env.sessions.DeleteSession(sessionID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	// The signature is still valid; the dead session row must kill it.
	if env.svc.VerifySessionToken(signed) != nil {
		t.Error("Token should be invalid after its session is revoked")
	}
}

func TestSessionToken_ExpiredFails(t *testing.T) {
	env := newTestService(t, -time.Minute, time.Hour)
	user := verifiedUser(t, env.users)

	signed, _, _, err := env.svc.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if env.svc.VerifySessionToken(signed) != nil {
		t.Error("Expired token should not verify")
	}
}

func TestSessionToken_ForgedSecretFails(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)
	user := verifiedUser(t, env.users)

	signed, _, _, err := env.svc.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	other := NewService("other-secret", env.sessions, env.users, time.Hour, time.Hour)
	if other.VerifySessionToken(signed) != nil {
		t.Error("Token signed with a different secret should not verify")
	}

	if env.svc.VerifySessionToken(signed+"x") != nil {
		t.Error("Tampered token should not verify")
	}
	if env.svc.VerifySessionToken("not-a-token") != nil {
		t.Error("Garbage should not verify")
	}
}

func TestSessionToken_UnverifiedUserFails(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)
	user := verifiedUser(t, env.users)

	signed, _, _, err := env.svc.IssueSessionToken(user)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	// Strip the verified flag behind the session's back.
	if _, err := env.db.Exec("UPDATE users SET is_verified = 0 WHERE id = ?", user.ID); err != nil {
		t.Fatalf("Failed to de-verify user: %v", err)
	}

	if env.svc.VerifySessionToken(signed) != nil {
		t.Error("Token for a de-verified user should not verify")
	}
}

func TestPurposeToken_RoundTrip(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)

	signed, err := env.svc.IssuePurposeToken("anna@example.com", PurposeEmailVerification)
	if err != nil {
		t.Fatalf("IssuePurposeToken failed: %v", err)
	}

	email, ok := env.svc.VerifyPurposeToken(signed, PurposeEmailVerification)
	if !ok {
		t.Fatal("Expected valid purpose token")
	}
	if email != "anna@example.com" {
		t.Errorf("Email = %s, want anna@example.com", email)
	}
}

func TestPurposeToken_WrongPurposeFails(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)

	signed, err := env.svc.IssuePurposeToken("anna@example.com", PurposeEmailVerification)
	if err != nil {
		t.Fatalf("IssuePurposeToken failed: %v", err)
	}

	// A verification token must never pass as a reset token.
	if _, ok := env.svc.VerifyPurposeToken(signed, PurposePasswordReset); ok {
		t.Error("Token verified under the wrong purpose")
	}
}

func TestPurposeToken_ExpiredFails(t *testing.T) {
	env := newTestService(t, time.Hour, -time.Minute)

	signed, err := env.svc.IssuePurposeToken("anna@example.com", PurposePasswordReset)
	if err != nil {
		t.Fatalf("IssuePurposeToken failed: %v", err)
	}

	if _, ok := env.svc.VerifyPurposeToken(signed, PurposePasswordReset); ok {
		t.Error("Expired purpose token should not verify")
	}
}

func TestPurposeToken_ForgedSecretFails(t *testing.T) {
	env := newTestService(t, time.Hour, time.Hour)

	other := NewService("other-secret", env.sessions, env.users, time.Hour, time.Hour)
	signed, err := other.IssuePurposeToken("anna@example.com", PurposePasswordReset)
	if err != nil {
		t.Fatalf("IssuePurposeToken failed: %v", err)
	}

	if _, ok := env.svc.VerifyPurposeToken(signed, PurposePasswordReset); ok {
		t.Error("Token signed with a different secret should not verify")
	}
}
