package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Tenant transaction outcomes
const (
	OutcomeCommit   = "commit"
	OutcomeRollback = "rollback"
	OutcomeRejected = "rejected"
)

var (
	KeyOutcome = tag.MustNewKey("outcome")

	TenantTransactions = stats.Int64(
		"backoffice/tenant_transactions",
		"Tenant-scoped transactions by outcome",
		stats.UnitDimensionless,
	)

	SchemaProvisionLatency = stats.Float64(
		"backoffice/schema_provision_latency",
		"Time spent provisioning one tenant schema",
		stats.UnitMilliseconds,
	)

	TenantTransactionsView = &view.View{
		Name:        "backoffice/tenant_transactions",
		Description: "Count of tenant-scoped transactions by outcome",
		Measure:     TenantTransactions,
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: view.Count(),
	}

	SchemaProvisionLatencyView = &view.View{
		Name:        "backoffice/schema_provision_latency",
		Description: "Distribution of tenant schema provisioning time",
		Measure:     SchemaProvisionLatency,
		Aggregation: view.Distribution(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	}

	// DefaultViews are registered by InitTracing when a metrics exporter is set
	DefaultViews = []*view.View{TenantTransactionsView, SchemaProvisionLatencyView}
)

// RecordTenantTransaction counts one tenant transaction with the given outcome
func RecordTenantTransaction(ctx context.Context, outcome string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyOutcome, outcome)}, TenantTransactions.M(1))
}

// RecordSchemaProvision records how long a provisioning run took
func RecordSchemaProvision(ctx context.Context, elapsed time.Duration) {
	stats.Record(ctx, SchemaProvisionLatency.M(float64(elapsed)/float64(time.Millisecond)))
}
