package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DrivingSchool-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs  []*fakeTx
	opts []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func serializationErr() error {
	return fmt.Errorf("timeslot.repository: failed to execute query: %w", &pq.Error{Code: "40001"})
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	m.retryDelay = 0

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithMaxAttempts(2))
	m.retryDelay = 0

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return serializationErr()
	})

	require.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Len(t, db.txs, 2)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	businessErr := errors.New("book_timeslot: slot is not available")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return businessErr
	})

	require.ErrorIs(t, err, businessErr)
	assert.Equal(t, 1, calls)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestRetryReason(t *testing.T) {
	reason, ok := RetryReason(serializationErr())
	assert.True(t, ok)
	assert.Equal(t, "serialization_failure", reason)

	reason, ok = RetryReason(&pq.Error{Code: "40P01"})
	assert.True(t, ok)
	assert.Equal(t, "deadlock_detected", reason)

	_, ok = RetryReason(&pq.Error{Code: "23505"})
	assert.False(t, ok)

	_, ok = RetryReason(errors.New("plain"))
	assert.False(t, ok)
}
