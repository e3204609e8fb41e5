package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (fakeTx) Commit() error                                                    { return nil }
func (fakeTx) Rollback() error                                                  { return nil }

func TestGetExecutor(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operationName("\n\tINSERT INTO bookings"))
	assert.Equal(t, "unknown", operationName("   "))
}
