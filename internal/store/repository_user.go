// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/fast-home/internal/logger"
	"github.com/MKhiriev/fast-home/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookups and the token fragment column of the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned fields (UserID, CreatedAt) filled in.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped via DB.wrapError.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		if classifyFailure(err) == failureUniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, r.db.wrapError(err)
	}

	return created, nil
}

// FindUserByUsername returns the user with the given username or
// [ErrUserNotFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

// FindUserByEmail returns the user with the given email or [ErrUserNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findUser(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, r.db.wrapError(err)
	}

	return user, nil
}

// SetVerified marks the user's email as verified. The statement only
// matches unverified rows, so a second call affects zero rows.
func (r *userRepository) SetVerified(ctx context.Context, userID int64) (int64, error) {
	return r.exec(ctx, "*userRepository.SetVerified", setVerified, userID)
}

// SetPasswordHash overwrites the stored bcrypt hash.
func (r *userRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) (int64, error) {
	return r.exec(ctx, "*userRepository.SetPasswordHash", setPasswordHash, userID, hash)
}

// SetTokenFragment stores fragment as the single outstanding action token
// marker, or clears it when fragment is nil.
func (r *userRepository) SetTokenFragment(ctx context.Context, userID int64, fragment *string) error {
	_, err := r.exec(ctx, "*userRepository.SetTokenFragment", setTokenFragment, userID, fragment)
	return err
}

// GetTokenFragment returns the outstanding fragment, nil when none is
// stored, or [ErrUserNotFound].
func (r *userRepository) GetTokenFragment(ctx context.Context, userID int64) (*string, error) {
	log := logger.FromContext(ctx)

	var fragment sql.NullString
	if err := r.db.QueryRowContext(ctx, getTokenFragment, userID).Scan(&fragment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetTokenFragment").Msg("error reading token fragment")
		return nil, r.db.wrapError(err)
	}

	if !fragment.Valid {
		return nil, nil
	}
	return &fragment.String, nil
}

// ConsumeTokenFragment clears the fragment only when it still equals
// fragment. Two concurrent completions with the same token cannot both
// succeed: the second one matches zero rows.
func (r *userRepository) ConsumeTokenFragment(ctx context.Context, userID int64, fragment string) (bool, error) {
	affected, err := r.exec(ctx, "*userRepository.ConsumeTokenFragment", consumeTokenFragment, userID, fragment)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *userRepository) exec(ctx context.Context, funcName, query string, args ...any) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return 0, r.db.wrapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return 0, r.db.wrapError(err)
	}

	return affected, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user     models.User
		fragment sql.NullString
	)

	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.EmailVerified,
		&fragment,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if fragment.Valid {
		user.TokenFragment = &fragment.String
	}

	return user, nil
}
