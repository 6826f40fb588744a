// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// failure is the coarse class of a failed PostgreSQL statement as far as the
// repositories care.
type failure int

const (
	failureUnexpected failure = iota
	// failureTransient covers lost connections, serialization failures and
	// deadlocks. The request may succeed later.
	failureTransient
	// failureUniqueViolation is 23505; only users.username and users.email
	// are unique.
	failureUniqueViolation
	// failureForeignKeyViolation is 23503: an unknown currency or contract
	// type, or a photo for a property deleted in the meantime.
	failureForeignKeyViolation
)

// classifyFailure inspects err for a pgx error code or a broken pooled
// connection.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyFailure(err error) failure {
	if err == nil {
		return failureUnexpected
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return failureTransient
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return failureUnexpected
	}

	switch {
	case pgErr.Code == pgerrcode.UniqueViolation:
		return failureUniqueViolation
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return failureForeignKeyViolation
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgErr.Code == pgerrcode.CannotConnectNow,
		pgErr.Code == pgerrcode.AdminShutdown:
		return failureTransient
	}

	return failureUnexpected
}

// wrapError turns a driver error into a store error. Transient failures wrap
// [ErrStoreUnavailable]; a cancelled request keeps its context error;
// everything else wraps the generic "unexpected DB error".
func (db *DB) wrapError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case classifyFailure(err) == failureTransient:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}
