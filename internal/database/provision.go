package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Etiti27/saas-platform-sub000/internal/database/schema"
	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/Etiti27/saas-platform-sub000/pkg/tracing"
)

// SchemaProvisioner stamps the tenant table set into a tenant schema. Each
// table is created in its own tenant transaction, so a crash can leave a
// partial set that the next run completes.
type SchemaProvisioner struct {
	db          *sql.DB
	transactor  tenancy.Transactor
	logger      logger.Logger
	concurrency int
}

func NewSchemaProvisioner(db *sql.DB, transactor tenancy.Transactor, logger logger.Logger, concurrency int) *SchemaProvisioner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SchemaProvisioner{
		db:          db,
		transactor:  transactor,
		logger:      logger,
		concurrency: concurrency,
	}
}

// ProvisionTenantSchema creates the schema and every tenant table if missing.
// It is safe to call on every login. Invalid names are returned as
// *tenancy.InvalidIdentifierError; anything else as *domain.ProvisioningError.
func (p *SchemaProvisioner) ProvisionTenantSchema(ctx context.Context, schemaName string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "SchemaProvisioner", "ProvisionTenantSchema")
	defer func() { tracing.EndSpan(span, err) }()

	name, err := tenancy.ValidateSchemaName(schemaName)
	if err != nil {
		return err
	}
	tracing.AddAttribute(ctx, "tenant_schema", name.String())

	start := time.Now()

	if _, execErr := p.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+name.Quoted()); execErr != nil && !isAlreadyExists(execErr) {
		return &domain.ProvisioningError{Schema: name.String(), Step: "create schema", Err: execErr}
	}

	for _, table := range schema.TenantTables {
		if tableErr := p.ensureTable(ctx, name, table); tableErr != nil {
			p.logger.WithFields(map[string]interface{}{
				"tenant_schema": name.String(),
				"table":         table.Name,
				"error":         tableErr.Error(),
			}).Error("Failed to provision tenant table")
			return &domain.ProvisioningError{Schema: name.String(), Step: "create table " + table.Name, Err: tableErr}
		}
	}

	tracing.RecordSchemaProvision(ctx, time.Since(start))
	p.logger.WithField("tenant_schema", name.String()).Debug("Tenant schema provisioned")
	return nil
}

// ensureTable retries once when a concurrent session won the race to create
// the same table; the failed attempt's transaction is already rolled back.
func (p *SchemaProvisioner) ensureTable(ctx context.Context, name tenancy.Identifier, table schema.TableDefinition) error {
	create := func(ctx context.Context, tx *tenancy.Tx) error {
		for _, stmt := range table.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}

	err := p.transactor.WithTenantTransaction(ctx, name.String(), create)
	if err != nil && isAlreadyExists(err) {
		err = p.transactor.WithTenantTransaction(ctx, name.String(), create)
	}
	return err
}

// ProvisionAll re-provisions every schema with bounded concurrency. A failing
// tenant is logged and skipped; the returned error only summarises failures.
func (p *SchemaProvisioner) ProvisionAll(ctx context.Context, schemaNames []string) error {
	var failed int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, name := range schemaNames {
		name := name
		g.Go(func() error {
			if err := p.ProvisionTenantSchema(gctx, name); err != nil {
				atomic.AddInt32(&failed, 1)
				p.logger.WithFields(map[string]interface{}{
					"tenant_schema": name,
					"error":         err.Error(),
				}).Error("Tenant schema reconciliation failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tenant schemas failed to provision", failed, len(schemaNames))
	}
	return nil
}
