package runtime

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, BackoffFactor: 2}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(10), func(context.Context) error {
		calls++
		if calls < 3 {
			return driver.ErrBadConn
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_Exhausted(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 4, calls)
}

func TestRetry_NonTransientFailsImmediately(t *testing.T) {
	boom := errors.New("syntax error")
	calls := 0
	err := Retry(context.Background(), fastPolicy(10), func(context.Context) error {
		calls++
		return boom
	})

	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_NoRetryRunsOnce(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), NoRetry(), func(context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	assert.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 1, calls)
	assert.False(t, NoRetry().Enabled())
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Hour, BackoffFactor: 2}

	err := Retry(ctx, policy, func(context.Context) error {
		cancel()
		return driver.ErrBadConn
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryWithResult(t *testing.T) {
	calls := 0
	n, err := RetryWithResult(context.Background(), fastPolicy(2), func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, mysql.ErrInvalidConn
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestNewRetryPolicy(t *testing.T) {
	p := NewRetryPolicy(10)
	assert.Equal(t, 10, p.MaxAttempts)
	assert.True(t, p.Enabled())
	assert.LessOrEqual(t, p.delay(50), p.MaxDelay+p.MaxDelay/4)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"bad conn", driver.ErrBadConn, true},
		{"mysql invalid conn", mysql.ErrInvalidConn, true},
		{"postgres connection failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, true},
		{"postgres serialization", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, true},
		{"postgres deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, true},
		{"postgres admin shutdown", &pgconn.PgError{Code: pgerrcode.AdminShutdown}, true},
		{"postgres unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, false},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"mysql lock wait", &mysql.MySQLError{Number: 1205}, true},
		{"mysql syntax", &mysql.MySQLError{Number: 1064}, false},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
