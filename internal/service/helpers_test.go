package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

const (
	testSchema = "acme_x1y2"
	testID1    = "7f0c2a52-9a5e-4a7e-9a57-0f0d6c1b1a01"
	testID2    = "7f0c2a52-9a5e-4a7e-9a57-0f0d6c1b1a02"
	testID3    = "7f0c2a52-9a5e-4a7e-9a57-0f0d6c1b1a03"
)

// fakeTransactor validates the schema like the real resolver and hands fn a
// detached Tx. Repositories in these tests are mocks or in-memory fakes.
type fakeTransactor struct {
	mu      sync.Mutex
	schemas []string
}

func (f *fakeTransactor) WithTenantTransaction(ctx context.Context, schemaName string, fn func(ctx context.Context, tx *tenancy.Tx) error) error {
	if _, err := tenancy.ValidateSchemaName(schemaName); err != nil {
		return err
	}
	f.mu.Lock()
	f.schemas = append(f.schemas, schemaName)
	f.mu.Unlock()
	return fn(ctx, &tenancy.Tx{})
}

func (f *fakeTransactor) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.schemas...)
}

func testLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}
