package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"suryayoga/internal/database"
	"suryayoga/internal/models"
)

const userColumns = `id, username, email, password_hash, COALESCE(google_id, ''), is_verified, is_admin, created_at, updated_at`

// Duplicate sentinels returned by CreateUserUnique when the email or
// username is already taken.
var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository is the credential store: it owns all reads and writes of
// user identity, password hashes and the verified/admin flags.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user. New users start unverified and non-admin.
func (r *UserRepository) CreateUser(username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, username, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now()
	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CreateUserUnique checks email and username and inserts inside one
// transaction, so two concurrent registrations cannot both pass the checks
// and race to the insert.
func (r *UserRepository) CreateUserUnique(username, email, passwordHash string) (*models.User, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`
	id, err := tx.ExecReturningID(query, username, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user: %w", err)
	}

	now := time.Now()
	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.getUser("email = ?", email)
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.getUser("username = ?", username)
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	return r.getUser("id = ?", id)
}

// GetUserByGoogleID retrieves a user by linked Google subject id
func (r *UserRepository) GetUserByGoogleID(googleID string) (*models.User, error) {
	return r.getUser("google_id = ?", googleID)
}

func (r *UserRepository) getUser(where string, arg interface{}) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, where)
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.GoogleID,
		&user.IsVerified,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// MarkVerified flips is_verified for the given email. Idempotent; reports
// whether a row was matched.
func (r *UserRepository) MarkVerified(email string) (bool, error) {
	query := `
		UPDATE users
		SET is_verified = ?, updated_at = CURRENT_TIMESTAMP
		WHERE email = ?
	`
	result, err := r.db.Exec(query, true, email)
	if err != nil {
		return false, fmt.Errorf("failed to mark user verified: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read verify result: %w", err)
	}
	return rows > 0, nil
}

// UpdatePassword replaces the password hash for the given email
func (r *UserRepository) UpdatePassword(email, passwordHash string) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE email = ?
	`
	result, err := r.db.Exec(query, passwordHash, email)
	if err != nil {
		return false, fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read password update result: %w", err)
	}
	return rows > 0, nil
}

// PromoteToAdmin grants the admin flag to the given email
func (r *UserRepository) PromoteToAdmin(email string) (bool, error) {
	query := `
		UPDATE users
		SET is_admin = ?, updated_at = CURRENT_TIMESTAMP
		WHERE email = ?
	`
	result, err := r.db.Exec(query, true, email)
	if err != nil {
		return false, fmt.Errorf("failed to promote user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read promote result: %w", err)
	}
	return rows > 0, nil
}

// LinkGoogleID attaches a Google subject id to an existing user. Linking is
// one-shot: a user whose google_id is already set keeps it.
func (r *UserRepository) LinkGoogleID(userID int64, googleID string) error {
	query := `
		UPDATE users
		SET google_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		AND (google_id IS NULL OR google_id = '')
	`
	result, err := r.db.Exec(query, googleID, userID)
	if err != nil {
		return fmt.Errorf("failed to link google id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("google id already linked")
	}

	return nil
}

// UserCounts holds the aggregate numbers reported by the admin metrics endpoint.
type UserCounts struct {
	Total    int
	Verified int
	Admins   int
	Recent   int
}

// CountUsers returns user totals; Recent counts signups in the last 30 days.
func (r *UserRepository) CountUsers() (UserCounts, error) {
	var counts UserCounts
	d := r.db.Dialect

	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&counts.Total); err != nil {
		return counts, fmt.Errorf("failed to count users: %w", err)
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM users WHERE is_verified = %s", d.BoolValue(true))
	if err := r.db.QueryRow(query).Scan(&counts.Verified); err != nil {
		return counts, fmt.Errorf("failed to count verified users: %w", err)
	}
	query = fmt.Sprintf("SELECT COUNT(*) FROM users WHERE is_admin = %s", d.BoolValue(true))
	if err := r.db.QueryRow(query).Scan(&counts.Admins); err != nil {
		return counts, fmt.Errorf("failed to count admin users: %w", err)
	}
	cutoff := time.Now().AddDate(0, 0, -30)
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE created_at >= ?", cutoff).Scan(&counts.Recent); err != nil {
		return counts, fmt.Errorf("failed to count recent users: %w", err)
	}

	return counts, nil
}

// MonthlySignups is one month's registration count, month formatted YYYY-MM.
type MonthlySignups struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SignupsByMonth groups registrations of the last six months by calendar
// month, newest first. Grouping happens in Go so the query stays portable
// across dialects.
func (r *UserRepository) SignupsByMonth() ([]MonthlySignups, error) {
	cutoff := time.Now().AddDate(0, -6, 0)
	rows, err := r.db.Query("SELECT created_at FROM users WHERE created_at >= ? ORDER BY created_at DESC", cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	byMonth := make(map[string]int)
	var order []string
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup date: %w", err)
		}
		month := createdAt.Format("2006-01")
		if _, seen := byMonth[month]; !seen {
			order = append(order, month)
		}
		byMonth[month]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate signups: %w", err)
	}

	signups := make([]MonthlySignups, 0, len(order))
	for _, month := range order {
		signups = append(signups, MonthlySignups{Month: month, Count: byMonth[month]})
	}
	return signups, nil
}
