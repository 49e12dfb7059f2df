package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: tenants must be created before profiles/uploads/templates, and
// uploads before official_settlements, due to foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS tenants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT 'RIDER',
    tenant_id TEXT,
    platform_ids TEXT NOT NULL DEFAULT '{}',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS parsing_templates (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    template_name TEXT NOT NULL,
    column_mapping TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS uploads (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    uploader_id TEXT NOT NULL,
    file_name TEXT NOT NULL,
    storage_path TEXT NOT NULL,
    week_identifier TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    processed_records INTEGER NOT NULL DEFAULT 0,
    error_message TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS official_settlements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    upload_id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    rider_platform_id TEXT NOT NULL,
    rider_name TEXT,
    settlement_amount REAL,
    support_fund REAL,
    deduction_total REAL,
    total_settlement_amount REAL,
    employment_insurance REAL,
    industrial_accident_insurance REAL,
    hourly_insurance REAL,
    retroactive_insurance REAL,
    lease_fee REAL,
    mission_fee REAL,
    actual_payout REAL,
    withholding_tax REAL,
    final_payout REAL,
    FOREIGN KEY (upload_id) REFERENCES uploads(id) ON DELETE CASCADE,
    FOREIGN KEY (tenant_id) REFERENCES tenants(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_profiles_tenant_id ON profiles(tenant_id);
CREATE INDEX IF NOT EXISTS idx_templates_tenant_id ON parsing_templates(tenant_id);
CREATE INDEX IF NOT EXISTS idx_uploads_tenant_id ON uploads(tenant_id);
CREATE INDEX IF NOT EXISTS idx_settlements_upload_id ON official_settlements(upload_id);
CREATE INDEX IF NOT EXISTS idx_settlements_tenant_id ON official_settlements(tenant_id);
CREATE INDEX IF NOT EXISTS idx_settlements_rider ON official_settlements(tenant_id, rider_platform_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
