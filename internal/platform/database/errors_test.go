package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSQLState(t *testing.T) {
	assert.Equal(t, "40001", SQLState(&pgconn.PgError{Code: "40001"}))
	assert.Equal(t, "23514", SQLState(fmt.Errorf("wrapped: %w", &pq.Error{Code: "23514"})))
	assert.Equal(t, "", SQLState(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure pgx", &pgconn.PgError{Code: CodeSerializationFailure}, true},
		{"deadlock lib/pq", &pq.Error{Code: CodeDeadlockDetected}, true},
		{"lock not available", fmt.Errorf("tx: %w", &pgconn.PgError{Code: CodeLockNotAvailable}), true},
		{"bad connection", fmt.Errorf("exec: %w", driver.ErrBadConn), true},
		{"check violation", &pgconn.PgError{Code: CodeCheckViolation}, false},
		{"context canceled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}

func TestIsRolledBack(t *testing.T) {
	assert.True(t, IsRolledBack(&pgconn.PgError{Code: CodeSerializationFailure}))
	assert.True(t, IsRolledBack(fmt.Errorf("commit: %w", &pq.Error{Code: CodeDeadlockDetected})))
	assert.False(t, IsRolledBack(&pgconn.PgError{Code: CodeLockNotAvailable}))
	assert.False(t, IsRolledBack(driver.ErrBadConn))
	assert.False(t, IsRolledBack(&net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}))
}

func TestViolationHelpers(t *testing.T) {
	assert.True(t, IsCheckViolation(&pq.Error{Code: CodeCheckViolation}))
	assert.False(t, IsCheckViolation(&pq.Error{Code: CodeUniqueViolation}))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: CodeUniqueViolation}))
}
