package sqlutil

import (
	"context"
	"database/sql"
)

// RunReadOnly executes fn inside a read-only *sql.Tx so multi-query reads see one
// snapshot. The tx is rolled back if fn returns an error, else committed.
func RunReadOnly[T any](
	ctx context.Context,
	db *sql.DB,
	newQueries func(*sql.Tx) *T,
	fn func(q *T) error,
) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}) // BEGIN
	if err != nil {
		return err
	}
	q := newQueries(tx) // bind sqlc Queries to this tx
	if err := fn(q); err != nil {
		_ = tx.Rollback() // ROLLBACK
		return err
	}
	return tx.Commit() // COMMIT
}
