package database

import (
	"strings"
	"testing"
)

func TestDialectTraits(t *testing.T) {
	tests := []struct {
		name                 string
		dialect              Dialect
		driverName           string
		supportsLastInsertId bool
		migrationsSubdir     string
		trueLiteral          string
	}{
		{
			name:                 "sqlite",
			dialect:              NewSQLiteDialect(),
			driverName:           "sqlite3",
			supportsLastInsertId: true,
			migrationsSubdir:     "sqlite",
			trueLiteral:          "1",
		},
		{
			name:                 "postgres",
			dialect:              NewPostgresDialect(),
			driverName:           "postgres",
			supportsLastInsertId: false,
			migrationsSubdir:     "postgres",
			trueLiteral:          "TRUE",
		},
		{
			name:                 "mysql",
			dialect:              NewMySQLDialect(),
			driverName:           "mysql",
			supportsLastInsertId: true,
			migrationsSubdir:     "mysql",
			trueLiteral:          "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %q, want %q", got, tt.driverName)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.supportsLastInsertId {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.supportsLastInsertId)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.migrationsSubdir)
			}
			if got := tt.dialect.BoolValue(true); got != tt.trueLiteral {
				t.Errorf("BoolValue(true) = %q, want %q", got, tt.trueLiteral)
			}
		})
	}
}

func TestSQLiteDSNEnforcesForeignKeys(t *testing.T) {
	dsn := NewSQLiteDialect().DSN(DialectConfig{Path: "suryayoga.db"})
	if !strings.Contains(dsn, "_foreign_keys=on") {
		t.Errorf("DSN %q should enable foreign keys for every pooled connection", dsn)
	}
}

func TestRewriteQuery(t *testing.T) {
	// The placeholder counts mirror the queries the repositories actually
	// run against sessions, reviews and news posts.
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "sqlite passes session lookup through",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT id, user_id, expires_at FROM sessions WHERE id = ? AND expires_at > ?",
			expected: "SELECT id, user_id, expires_at FROM sessions WHERE id = ? AND expires_at > ?",
		},
		{
			name:     "mysql passes review listing through",
			dialect:  NewMySQLDialect(),
			query:    "SELECT id, rating, title FROM reviews WHERE is_approved = 1 AND language = ?",
			expected: "SELECT id, rating, title FROM reviews WHERE is_approved = 1 AND language = ?",
		},
		{
			name:     "postgres numbers the session lookup",
			dialect:  NewPostgresDialect(),
			query:    "SELECT id, user_id, expires_at FROM sessions WHERE id = ? AND expires_at > ?",
			expected: "SELECT id, user_id, expires_at FROM sessions WHERE id = $1 AND expires_at > $2",
		},
		{
			name:     "postgres numbers the review insert",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO reviews (user_id, rating, title, content, language) VALUES (?, ?, ?, ?, ?)",
			expected: "INSERT INTO reviews (user_id, rating, title, content, language) VALUES ($1, $2, $3, $4, $5)",
		},
		{
			name:     "postgres leaves placeholder-free toggles alone",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE news_posts SET is_published = NOT is_published",
			expected: "UPDATE news_posts SET is_published = NOT is_published",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.expected)
			}
		})
	}
}
