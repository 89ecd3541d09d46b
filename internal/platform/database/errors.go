package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes the repositories care about.
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
	CodeCheckViolation       = "23514"
	CodeForeignKeyViolation  = "23503"
	CodeUniqueViolation      = "23505"
)

// SQLState extracts the SQLSTATE code from either driver's error type.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsRetryable reports whether a transaction failed for a reason that a fresh
// attempt may not hit again: contention or a dropped connection.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch SQLState(err) {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRolledBack reports whether the server itself aborted the transaction, so a
// failed COMMIT certainly did not apply. Any other COMMIT failure leaves the
// outcome unknown.
func IsRolledBack(err error) bool {
	switch SQLState(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}

func IsCheckViolation(err error) bool {
	return SQLState(err) == CodeCheckViolation
}

func IsUniqueViolation(err error) bool {
	return SQLState(err) == CodeUniqueViolation
}
