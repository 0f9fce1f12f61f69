package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
)

// Backend names reported by [Storages.Backend].
const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Storages groups the repositories the services depend on together with the
// connection that backs them.
type Storages struct {
	UserRepository UserRepository

	backend string
	closer  func(ctx context.Context) error
}

// NewStorages selects the backend from the DSN scheme, opens it and builds
// the repositories:
//
//	mongodb://, mongodb+srv://  document store (connects on first use)
//	postgres://, postgresql://  PostgreSQL via pgx, tables created with goose
//	sqlite://<path>, file:...   SQLite, tables created with goose
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	backend, err := backendFromDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendMongo:
		mongoDB, err := NewMongoDB(cfg, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			UserRepository: NewMongoUserRepository(mongoDB, log),
			backend:        backend,
			closer:         mongoDB.Close,
		}, nil

	default:
		var db *DB
		if backend == BackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg, log)
		}
		if err != nil {
			return nil, err
		}

		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("error creating tables: %w", err)
		}

		return &Storages{
			UserRepository: NewSQLUserRepository(db, log),
			backend:        backend,
			closer: func(context.Context) error {
				return db.Close()
			},
		}, nil
	}
}

// Backend returns the name of the selected backend.
func (s *Storages) Backend() string {
	return s.backend
}

// Close releases the underlying connection.
func (s *Storages) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}

func backendFromDSN(dsn string) (string, error) {
	switch {
	case dsn == "":
		return "", errors.Join(ErrUnsupportedDSN, errors.New("empty DSN"))
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, nil
	case strings.HasPrefix(dsn, sqliteScheme), strings.HasPrefix(dsn, "file:"):
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("%w: unknown scheme in %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// redactDSN keeps the scheme of dsn and drops credentials and hosts.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}
