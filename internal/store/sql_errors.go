package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Unique constraint names declared in migrations/00001_users.sql.
const (
	usernameUniqueConstraint = "users_username_key"
	emailUniqueConstraint    = "users_email_key"
)

// ErrorClassificator translates driver errors into repository sentinels.
type ErrorClassificator interface {
	// Classify returns [ErrUsernameTaken], [ErrEmailTaken] or
	// [ErrUserAlreadyExists] for a uniqueness violation and nil for any
	// other error.
	Classify(err error) error
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. The violated column is taken
// from the constraint name, falling back to the detail text.
func (c *PostgresErrorClassifier) Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	switch {
	case pgErr.ConstraintName == usernameUniqueConstraint, strings.Contains(pgErr.Detail, "(username)"):
		return ErrUsernameTaken
	case pgErr.ConstraintName == emailUniqueConstraint, strings.Contains(pgErr.Detail, "(email)"):
		return ErrEmailTaken
	default:
		return ErrUserAlreadyExists
	}
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
// SQLite reports the violated column only in the message text, e.g.
// "UNIQUE constraint failed: users.email".
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) Classify(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return nil
	}
	if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique && sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return nil
	}

	msg := sqliteErr.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return ErrUsernameTaken
	case strings.Contains(msg, "users.email"):
		return ErrEmailTaken
	default:
		return ErrUserAlreadyExists
	}
}
