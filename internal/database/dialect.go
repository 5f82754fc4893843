package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect abstracts the differences between the supported backends so the
// repositories can write one set of queries with ? placeholders. The studio
// runs on SQLite by default and on PostgreSQL or MySQL when DATABASE_URL
// points at one.
type Dialect interface {
	// DriverName names the driver passed to sql.Open.
	DriverName() string

	// DSN builds the data source name from the configured path or URL.
	DSN(config DialectConfig) string

	// RewriteQuery rewrites ? placeholders into the backend's native form.
	RewriteQuery(query string) string

	// SupportsLastInsertId reports whether the driver returns insert IDs
	// through Result.LastInsertId. When it does not, ExecReturningID
	// appends a RETURNING clause instead.
	SupportsLastInsertId() bool

	// ConfigureConnection applies pool limits and backend pragmas.
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir names the per-backend directory under migrations/.
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the DDL for the table that
	// records which migrations have run.
	CreateMigrationsTableQuery() string

	// BoolValue renders a boolean literal for queries built by hand,
	// such as the published and approved filters.
	BoolValue(b bool) string
}

// DialectConfig carries the connection settings a dialect needs. Path is
// the SQLite file; URL is the PostgreSQL or MySQL connection string.
type DialectConfig struct {
	Path string
	URL  string
}

// rewritePlaceholdersToNumbered turns each ? into $1, $2, ... in order.
// Queries here never embed literal question marks, so a plain scan is
// enough.
func rewritePlaceholdersToNumbered(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tunePool applies the shared connection-pool limits used by the
// server-backed dialects.
func tunePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}
