package tenancy

import (
	"context"
	"database/sql"
)

// Tx is a transaction whose search_path is bound to one tenant schema.
// Only the Resolver creates usable values.
type Tx struct {
	tx     *sql.Tx
	schema Identifier
}

// Schema returns the tenant schema this transaction is bound to
func (t *Tx) Schema() Identifier {
	return t.schema
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

type txKey struct{}

func withTx(ctx context.Context, tx *Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// FromContext returns the tenant transaction carried by ctx, if any
func FromContext(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}
