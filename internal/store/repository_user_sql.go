package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/internal/utils"
	"github.com/MKhiriev/playground-auth/models"
)

const (
	usersTable    = "users"
	countersTable = "usage_counters"
)

var userColumns = []string{"id", "username", "email", "password_hash", "last_login", "created_at"}

// sqlUserRepository is the [UserRepository] backed by PostgreSQL or SQLite.
// Accounts live in "users"; each non-zero counter is one row of
// "usage_counters" keyed by (user_id, kind, language). Keys without a row
// read back as zero.
type sqlUserRepository struct {
	*DB
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewSQLUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")
	return &sqlUserRepository{
		DB:     db,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// CreateUser inserts the account row with a fresh UUIDv7 identifier.
// Counter rows are created lazily by [sqlUserRepository.IncrementCounter].
func (r *sqlUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.UserID = r.ids.Generate()
	query, args, err := r.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Username, user.Email, user.PasswordHash, nullTime(user.LastLogin), user.CreatedAt).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if classified := r.errorClassificator.Classify(err); classified != nil {
			log.Debug().Err(err).Str("func", "*sqlUserRepository.CreateUser").Msg("unique violation")
			return models.User{}, classified
		}
		log.Err(err).Str("func", "*sqlUserRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, kind := range models.CounterKinds {
		if user.Counters(kind) == nil {
			user.SetCounters(kind, models.NewCounters())
		}
	}

	return user, nil
}

func (r *sqlUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

func (r *sqlUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

func (r *sqlUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"username": username})
}

// findUser loads one account matching where together with its counters.
func (r *sqlUserRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		user      models.User
		lastLogin sql.NullTime
	)
	err = r.QueryRowContext(ctx, query, args...).
		Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &lastLogin, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.findUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	if err = r.loadCounters(ctx, &user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *sqlUserRepository) loadCounters(ctx context.Context, user *models.User) error {
	log := logger.FromContext(ctx)

	for _, kind := range models.CounterKinds {
		user.SetCounters(kind, models.NewCounters())
	}

	query, args, err := r.builder.
		Select("kind", "language", "count").
		From(countersTable).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.loadCounters").Str("user_id", user.UserID).Msg("error selecting counters")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind     models.CounterKind
			language models.Language
			count    int64
		)
		if err = rows.Scan(&kind, &language, &count); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if counters := user.Counters(kind); counters != nil {
			counters[language] = count
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

func (r *sqlUserRepository) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return r.updateColumn(ctx, userID, "last_login", lastLogin)
}

func (r *sqlUserRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	return r.updateColumn(ctx, userID, "username", username)
}

func (r *sqlUserRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	return r.updateColumn(ctx, userID, "email", email)
}

func (r *sqlUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return r.updateColumn(ctx, userID, "password_hash", passwordHash)
}

// updateColumn sets a single column of one account.
func (r *sqlUserRepository) updateColumn(ctx context.Context, userID, column string, value any) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update(usersTable).
		Set(column, value).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		if classified := r.errorClassificator.Classify(err); classified != nil {
			return classified
		}
		log.Err(err).Str("func", "*sqlUserRepository.updateColumn").Str("column", column).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result)
}

// DeleteUser removes the counter rows and the account in one transaction.
func (r *sqlUserRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	deleteCounters, counterArgs, err := r.builder.Delete(countersTable).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteUser, userArgs, err := r.builder.Delete(usersTable).Where(sq.Eq{"id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.DeleteUser").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteCounters, counterArgs...); err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.DeleteUser").Msg("error deleting counters")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, deleteUser, userArgs...)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if err = expectAffected(result); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.DeleteUser").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// IncrementCounter upserts the (user, kind, language) row. The user id is
// resolved inside the statement, so an unknown username inserts nothing.
func (r *sqlUserRepository) IncrementCounter(ctx context.Context, username string, kind models.CounterKind, language models.Language) error {
	log := logger.FromContext(ctx)

	query, args, err := buildIncrementCounterQuery(r.builder, username, kind, language)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*sqlUserRepository.IncrementCounter").
			Str("kind", string(kind)).
			Str("language", string(language)).
			Msg("error incrementing counter")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(result)
}

func buildIncrementCounterQuery(builder sq.StatementBuilderType, username string, kind models.CounterKind, language models.Language) (string, []any, error) {
	source := sq.Select("id").
		Column("CAST(? AS TEXT)", string(kind)).
		Column("CAST(? AS TEXT)", string(language)).
		Column("1").
		From(usersTable).
		Where(sq.Eq{"username": username})

	return builder.
		Insert(countersTable).
		Columns("user_id", "kind", "language", "count").
		Select(source).
		Suffix("ON CONFLICT (user_id, kind, language) DO UPDATE SET count = " + countersTable + ".count + 1").
		ToSql()
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
