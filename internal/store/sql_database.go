package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/migrations"
)

// DB is a SQL connection pool together with the dialect-specific pieces the
// repositories need: the goose dialect, the squirrel placeholder format and
// the unique-violation classifier of the driver.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate brings the schema up to date with the embedded table definitions.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
