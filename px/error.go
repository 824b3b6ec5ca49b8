package px

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Helpers for working with Postgres errors.
// The pgerrcode package contains Postgres error codes and many useful functions like IsIntegrityConstraintViolation.
// If something is missing there, it is added to this file.
// https://www.postgresql.org/docs/16/errcodes-appendix.html

// IsNoRows checks if the error is a "no rows" error.
func IsNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}

	return hasCode(err, pgerrcode.NoDataFound)
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

// IsForeignKeyViolation checks if the error is a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation)
}

// IsSerializationFailure checks if the error is a serialization failure of a SERIALIZABLE
// or REPEATABLE READ transaction.
func IsSerializationFailure(err error) bool {
	return hasCode(err, pgerrcode.SerializationFailure)
}

// IsDeadlock checks if the error is a detected deadlock.
func IsDeadlock(err error) bool {
	return hasCode(err, pgerrcode.DeadlockDetected)
}

// IsRetryable reports whether the whole transaction can be safely repeated.
// Suitable as the classifier of db.ExecutionBuilder.Retry.
func IsRetryable(err error) bool {
	pgErr, ok := toPgError(err)
	if !ok {
		return false
	}

	return pgerrcode.IsTransactionRollback(pgErr.Code)
}

func hasCode(err error, code string) bool {
	if pgErr, ok := toPgError(err); ok {
		return pgErr.Code == code
	}
	return false
}

func toPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
