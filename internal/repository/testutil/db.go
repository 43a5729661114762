package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// SetupTenantTx returns a mock plus a helper that runs fn inside a real
// tenant transaction for schema. Callers register ExpectTenantBegin, the
// queries fn issues and the closing commit or rollback.
func SetupTenantTx(t *testing.T, schema string) (sqlmock.Sqlmock, func(fn func(ctx context.Context, tx *tenancy.Tx) error) error) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	resolver := tenancy.NewResolver(db, logger.NewTestLogger(t))

	run := func(fn func(ctx context.Context, tx *tenancy.Tx) error) error {
		return resolver.WithTenantTransaction(context.Background(), schema, fn)
	}
	return mock, run
}

// ExpectTenantBegin registers the statements a tenant transaction opens with
func ExpectTenantBegin(mock sqlmock.Sqlmock, schema string) {
	mock.ExpectBegin()
	mock.ExpectExec(`SET LOCAL search_path TO "` + schema + `", public`).
		WillReturnResult(sqlmock.NewResult(0, 0))
}
