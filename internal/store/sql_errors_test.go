package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"username constraint", pgUniqueViolation(usernameUniqueConstraint), ErrUsernameTaken},
		{"email constraint", pgUniqueViolation(emailUniqueConstraint), ErrEmailTaken},
		{
			name: "email from detail",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: "Key (email)=(a@b.c) already exists."},
			want: ErrEmailTaken,
		},
		{"other unique", pgUniqueViolation("users_pkey"), ErrUserAlreadyExists},
		{"wrapped", fmt.Errorf("exec: %w", pgUniqueViolation(usernameUniqueConstraint)), ErrUsernameTaken},
		{"not null violation", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, nil},
		{"plain error", errors.New("boom"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	unique := func(msg string) error {
		return fmt.Errorf("%w: %s", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, msg)
	}

	assert.Equal(t, ErrUserAlreadyExists, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.Nil(t, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.Nil(t, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Nil(t, c.Classify(errors.New("boom")))
	assert.Equal(t, ErrUserAlreadyExists, c.Classify(unique("UNIQUE constraint failed: users.username")),
		"only the driver error text is inspected")
}
