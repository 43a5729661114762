package schema

// SystemTableDefinitions create the tenant registry. Every name is qualified
// with public so the statements are unaffected by any search_path.
var SystemTableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS public.tenants (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		schema_name VARCHAR(63) NOT NULL UNIQUE,
		admin_email VARCHAR(255) NOT NULL UNIQUE,
		logo TEXT NOT NULL DEFAULT '',
		sector VARCHAR(100) NOT NULL DEFAULT '',
		start_date DATE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS public.users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role VARCHAR(20) NOT NULL,
		tenant_id UUID NOT NULL REFERENCES public.tenants(id) ON DELETE CASCADE ON UPDATE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_tenant_id ON public.users(tenant_id)`,
}

// SystemTableNames lists the registry tables in creation order
var SystemTableNames = []string{"tenants", "users"}
