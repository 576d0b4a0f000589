package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM time_slots", "select"},
		{"  INSERT INTO appointments (user_id) VALUES ($1)", "insert"},
		{"UPDATE time_slots SET status = $1", "update"},
		{"DELETE FROM appointments WHERE id = $1", "delete"},
		{"LOCK TABLE time_slots", "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, operation(tt.query), tt.query)
	}
}

type stubTx struct{ *sql.Tx }

func (s stubTx) Commit() error   { return nil }
func (s stubTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}
