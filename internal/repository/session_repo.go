package repository

import (
	"database/sql"
	"fmt"
	"time"

	"suryayoga/internal/database"
	"suryayoga/internal/models"
)

// SessionRepository persists login sessions. A session row existing and
// unexpired is what keeps an issued token alive; deleting the row revokes
// the token immediately.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts a session row with a caller-chosen id
func (r *SessionRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession returns the session if it exists and has not expired, nil
// otherwise. Expiry is checked here rather than by a background job, so an
// expired row behaves as gone even before the sweeper removes it.
func (r *SessionRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ? AND expires_at > ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID, time.Now()).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session row. Deleting an absent session is not an
// error.
func (r *SessionRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteSessionsForUser removes every session belonging to a user, logging
// them out everywhere.
func (r *SessionRepository) DeleteSessionsForUser(userID int64) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions past their expiry and reports how many rows
// went away.
func (r *SessionRepository) PurgeExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}
	return rows, nil
}

// CountActiveSessions counts sessions that have not yet expired
func (r *SessionRepository) CountActiveSessions() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE expires_at > ?", time.Now()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
