package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

// versionedTable names the key and version columns of a table guarded by
// optimistic concurrency
type versionedTable struct {
	table         string
	keyColumn     string
	versionColumn string
}

// compareAndSwap writes values to the row whose key matches and whose version
// equals expected, bumping the version by one in the same statement. When
// expected is 0 the row must not exist yet and is inserted at version 1.
// swapped is false on a version mismatch; that is a result, not an error.
func compareAndSwap(ctx context.Context, tx *tenancy.Tx, vt versionedTable, key interface{}, expected int64, values map[string]interface{}) (newVersion int64, swapped bool, err error) {
	now := time.Now().UTC()

	var builder sq.Sqlizer
	if expected == 0 {
		insert := map[string]interface{}{
			vt.keyColumn:     key,
			vt.versionColumn: 1,
			"updated_at":     now,
		}
		for k, v := range values {
			insert[k] = v
		}
		builder = psql.Insert(vt.table).
			SetMap(insert).
			Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING RETURNING %s", vt.keyColumn, vt.versionColumn))
	} else {
		set := map[string]interface{}{
			vt.versionColumn: sq.Expr(vt.versionColumn + " + 1"),
			"updated_at":     now,
		}
		for k, v := range values {
			set[k] = v
		}
		builder = psql.Update(vt.table).
			SetMap(set).
			Where(sq.Eq{vt.keyColumn: key, vt.versionColumn: expected}).
			Suffix("RETURNING " + vt.versionColumn)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("failed to build query: %w", err)
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&newVersion)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to compare and swap %s: %w", vt.table, mapPgError(err))
	}
	return newVersion, true, nil
}
