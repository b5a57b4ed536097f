package driver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/storefront/driver"
)

func newManager(t *testing.T) (*driver.TransactionManager, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return driver.NewTransactionManager(mock, nil), mock
}

func TestExecuteReadOnlyCommits(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectCommit()

	require.NoError(t, tm.ExecuteReadOnly(context.Background(), func(pgx.Tx) error { return nil }))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedWorkRollsBack(t *testing.T) {
	tm, mock := newManager(t)
	boom := errors.New("boom")

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	mock.ExpectRollback()

	err := tm.ExecuteReadOnly(context.Background(), func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitFailureIsReturned(t *testing.T) {
	tm, mock := newManager(t)
	boom := errors.New("serialization failure")

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectCommit().WillReturnError(boom)

	err := tm.ExecuteTransactionWithOptions(context.Background(), pgx.TxOptions{}, func(pgx.Tx) error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPanicRollsBackAndRepanics(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.ExecuteTransactionWithOptions(context.Background(), pgx.TxOptions{}, func(pgx.Tx) error {
			panic("bad scan")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginFailure(t *testing.T) {
	tm, mock := newManager(t)
	boom := errors.New("no connection")

	mock.ExpectBeginTx(pgx.TxOptions{}).WillReturnError(boom)

	err := tm.ExecuteTransactionWithOptions(context.Background(), pgx.TxOptions{}, func(pgx.Tx) error {
		t.Fatal("work must not run")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
