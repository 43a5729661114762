package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Etiti27/saas-platform-sub000/internal/database/schema"
)

// InitializeDatabase creates the tenant registry tables in public
func InitializeDatabase(ctx context.Context, db *sql.DB) error {
	for _, query := range schema.SystemTableDefinitions {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create system table: %w", err)
		}
	}
	return nil
}

func quoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// isAlreadyExists matches the errors CREATE ... IF NOT EXISTS can still raise
// when two sessions create the same object concurrently
func isAlreadyExists(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "42P06", // duplicate_schema
		"42P07", // duplicate_table
		"42710", // duplicate_object
		"23505": // unique_violation on pg_namespace / pg_type
		return true
	}
	return false
}
