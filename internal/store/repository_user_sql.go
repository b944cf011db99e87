package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles credential creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	ids    idGenerator
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, ids idGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		ids:    ids,
		logger: logger,
	}
}

// CreateUser persists a new user and returns it with its assigned ID.
//
// Error handling:
//   - unique violation on identity → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped [ErrStoreUnavailable].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.ID == "" {
		user.ID = r.ids.Generate()
	}
	user.CreatedAt = truncateTime(user.CreatedAt)

	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").
			Stringer("class", r.db.classify(err)).
			Msg("error inserting user")
		return models.User{}, unavailable("create user", err)
	}

	return user, nil
}

// FindUserByIdentity retrieves the user registered under identity.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped [ErrStoreUnavailable].
func (r *userRepository) FindUserByIdentity(ctx context.Context, identity string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByIdentityQuery(r.db.builder(), identity)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	// scan found user from db
	err = row.Scan(&user.ID, &user.Identity, &user.SecretHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByIdentity").
			Stringer("class", r.db.classify(err)).
			Msg("error finding user")
		return models.User{}, unavailable("find user", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return user, nil
}
