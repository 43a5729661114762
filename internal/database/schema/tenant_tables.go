package schema

// TableDefinition is one tenant table and its indexes. Statements never name a
// schema; they land in whichever schema the transaction's search_path selects.
type TableDefinition struct {
	Name       string
	Statements []string
}

// TenantTables in dependency order: referenced tables come before the tables
// that reference them.
var TenantTables = []TableDefinition{
	{
		Name: "jobs",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS jobs (
				id UUID PRIMARY KEY,
				title VARCHAR(255) NOT NULL UNIQUE,
				department VARCHAR(100) NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
	},
	{
		Name: "payrolls",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS payrolls (
				id UUID PRIMARY KEY,
				base_salary NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (base_salary >= 0),
				currency CHAR(3) NOT NULL DEFAULT 'USD',
				pay_frequency VARCHAR(20) NOT NULL DEFAULT 'monthly',
				bank_account TEXT NOT NULL DEFAULT '',
				tax_id VARCHAR(64) NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
	},
	{
		Name: "employees",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS employees (
				id UUID PRIMARY KEY,
				user_id UUID UNIQUE,
				first_name VARCHAR(100) NOT NULL,
				last_name VARCHAR(100) NOT NULL,
				email VARCHAR(255) NOT NULL UNIQUE,
				phone VARCHAR(50) NOT NULL DEFAULT '',
				job_id UUID NOT NULL REFERENCES jobs(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				payroll_id UUID NOT NULL UNIQUE REFERENCES payrolls(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				status VARCHAR(20) NOT NULL DEFAULT 'active',
				hire_date DATE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_employees_job_id ON employees(job_id)`,
		},
	},
	{
		Name: "products",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS products (
				id UUID PRIMARY KEY,
				sku VARCHAR(64) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
				quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
	},
	{
		Name: "orders",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS orders (
				id UUID PRIMARY KEY,
				order_number VARCHAR(64) NOT NULL UNIQUE,
				seller_id UUID NOT NULL REFERENCES employees(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				customer_name VARCHAR(255) NOT NULL DEFAULT '',
				status VARCHAR(20) NOT NULL DEFAULT 'pending',
				total NUMERIC(12,2) NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_seller_id ON orders(seller_id)`,
		},
	},
	{
		Name: "order_items",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS order_items (
				id UUID PRIMARY KEY,
				order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
				product_id UUID NOT NULL REFERENCES products(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				quantity INTEGER NOT NULL CHECK (quantity > 0),
				unit_price NUMERIC(12,2) NOT NULL,
				UNIQUE (order_id, product_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id)`,
		},
	},
	{
		Name: "expenses",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS expenses (
				id UUID PRIMARY KEY,
				description VARCHAR(500) NOT NULL,
				category VARCHAR(100) NOT NULL DEFAULT '',
				amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
				incurred_on DATE,
				employee_id UUID REFERENCES employees(id) ON UPDATE CASCADE ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
	},
	{
		Name: "refunds",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS refunds (
				id UUID PRIMARY KEY,
				order_id UUID NOT NULL REFERENCES orders(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				employee_id UUID NOT NULL REFERENCES employees(id) ON UPDATE CASCADE ON DELETE RESTRICT,
				amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
				reason TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_refunds_order_id ON refunds(order_id)`,
		},
	},
	{
		Name: "user_preferences",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS user_preferences (
				user_id UUID PRIMARY KEY,
				document JSONB NOT NULL DEFAULT '{}'::jsonb,
				version BIGINT NOT NULL DEFAULT 0,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
	},
}

// TenantTableNames returns the tenant tables in creation order
func TenantTableNames() []string {
	names := make([]string, len(TenantTables))
	for i, t := range TenantTables {
		names[i] = t.Name
	}
	return names
}
