// Copyright (c) 2026 Cat Café. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// The PostgreSQL constraints (unique indexes, foreign keys) are the
// authoritative guard for uniqueness and referential integrity; the
// application-level checks in the services are a fast path only. This
// package is where a constraint firing under a concurrent race is turned
// into the same typed outcome the fast path would have produced.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/catcafe/catcafe/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// SQLSTATE classification for constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with this value already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ReferentialViolation("Referenced record does not exist")
		case pgerrcode.ConnectionException, pgerrcode.ConnectionFailure,
			pgerrcode.ConnectionDoesNotExist, pgerrcode.SQLClientUnableToEstablishSQLConnection:
			return apperr.StoreUnavailable(err)
		}
	}

	// The pool could not reach the database at all.
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.StoreUnavailable(err)
	}

	// Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
