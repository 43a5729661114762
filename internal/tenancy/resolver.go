package tenancy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/Etiti27/saas-platform-sub000/pkg/tracing"
)

// Transactor runs fn inside a transaction bound to a tenant schema
type Transactor interface {
	WithTenantTransaction(ctx context.Context, schemaName string, fn func(ctx context.Context, tx *Tx) error) error
}

// Resolver is the only way to obtain a transaction for tenant-scoped work.
// The search_path is set with SET LOCAL so it reverts when the transaction
// ends and never follows a pooled connection into another request.
type Resolver struct {
	db     *sql.DB
	logger logger.Logger
}

func NewResolver(db *sql.DB, logger logger.Logger) *Resolver {
	return &Resolver{db: db, logger: logger}
}

// WithTenantTransaction validates schemaName, begins a transaction, binds it to
// the schema and runs fn. fn's error rolls the transaction back and is returned
// unchanged; a nil error commits.
func (r *Resolver) WithTenantTransaction(ctx context.Context, schemaName string, fn func(ctx context.Context, tx *Tx) error) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TenantResolver", "WithTenantTransaction")
	defer func() { tracing.EndSpan(span, err) }()

	schema, err := ValidateSchemaName(schemaName)
	if err != nil {
		tracing.RecordTenantTransaction(ctx, tracing.OutcomeRejected)
		return err
	}
	tracing.AddAttribute(ctx, "tenant_schema", schema.String())

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tenant transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			r.logger.WithFields(map[string]interface{}{
				"tenant_schema": schema.String(),
				"error":         rbErr.Error(),
			}).Warn("Failed to roll back tenant transaction")
		}
		tracing.RecordTenantTransaction(ctx, tracing.OutcomeRollback)
	}()

	if _, err = sqlTx.ExecContext(ctx, "SET LOCAL search_path TO "+schema.Quoted()+", public"); err != nil {
		return fmt.Errorf("failed to set tenant search path: %w", err)
	}

	tx := &Tx{tx: sqlTx, schema: schema}
	if err = fn(withTx(ctx, tx), tx); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		done = true
		tracing.RecordTenantTransaction(ctx, tracing.OutcomeRollback)
		return fmt.Errorf("failed to commit tenant transaction: %w", err)
	}
	done = true
	tracing.RecordTenantTransaction(ctx, tracing.OutcomeCommit)
	return nil
}

// Run is WithTenantTransaction for bodies that produce a value
func Run[T any](ctx context.Context, t Transactor, schemaName string, fn func(ctx context.Context, tx *Tx) (T, error)) (T, error) {
	var result T
	err := t.WithTenantTransaction(ctx, schemaName, func(ctx context.Context, tx *Tx) error {
		v, err := fn(ctx, tx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
