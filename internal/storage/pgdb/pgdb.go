// Package pgdb holds the pieces of the storage layer shared by every table
// package: the executor interface satisfied by both a pool and a transaction,
// and the mapping from driver errors onto the domain error taxonomy.
package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/finexa/finexa-server/internal/domain"
)

// Queryer is satisfied by *pgxpool.Pool and pgx.Tx, so table code runs
// unchanged inside and outside an atomic unit.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres SQLSTATEs that indicate the transaction lost a race and can be
// retried as a whole.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// MapError translates driver errors into domain sentinels. Row absence
// becomes domain.ErrNotFound; aborted atomic writes become
// domain.ErrTransient. Anything else passes through wrapped.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrTransient, pgErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
