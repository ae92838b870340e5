package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/pkg/logger"
)

// ControlSchema holds the control-plane tables: user accounts double as
// the tenant registry.
const ControlSchema = `
CREATE TABLE IF NOT EXISTS users (
    id                       BIGSERIAL PRIMARY KEY,
    login_id                 TEXT NOT NULL,
    email                    TEXT NOT NULL,
    password_hash            TEXT NOT NULL,
    email_verified           BOOLEAN NOT NULL DEFAULT FALSE,
    verification_code        TEXT,
    verification_code_expiry TIMESTAMPTZ,
    created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at               TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_login_id ON users (login_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);
`

// EnsureControlSchema applies the control-plane schema to the given pool.
func EnsureControlSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, ControlSchema); err != nil {
		return fmt.Errorf("apply control schema: %w", err)
	}
	return nil
}

// Schema applied to every freshly created tenant database.
const Schema = `
CREATE TABLE IF NOT EXISTS warehouses (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    short_code  TEXT NOT NULL,
    address     TEXT NOT NULL DEFAULT '',
    notes       TEXT NOT NULL DEFAULT '',
    version     INT NOT NULL DEFAULT 1,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_warehouses_short_code ON warehouses (short_code);

CREATE TABLE IF NOT EXISTS locations (
    id             UUID PRIMARY KEY,
    name           TEXT NOT NULL,
    short_code     TEXT NOT NULL DEFAULT '',
    warehouse_id   UUID REFERENCES warehouses (id),
    warehouse_name TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    version        INT NOT NULL DEFAULT 1,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_locations_short_code
    ON locations (short_code) WHERE short_code <> '';
CREATE INDEX IF NOT EXISTS idx_locations_warehouse ON locations (warehouse_id);

CREATE TABLE IF NOT EXISTS stock_items (
    id              UUID PRIMARY KEY,
    product_name    TEXT NOT NULL,
    product_code    TEXT NOT NULL DEFAULT '',
    category        TEXT NOT NULL DEFAULT '',
    quantity        BIGINT NOT NULL DEFAULT 0,
    unit_price      NUMERIC(19, 4) NOT NULL DEFAULT 0,
    total_value     NUMERIC(19, 4) NOT NULL DEFAULT 0,
    supplier_name   TEXT NOT NULL DEFAULT '',
    location        TEXT NOT NULL DEFAULT '',
    min_stock_level BIGINT NOT NULL DEFAULT 0,
    max_stock_level BIGINT,
    status          TEXT NOT NULL DEFAULT 'active',
    notes           TEXT NOT NULL DEFAULT '',
    version         INT NOT NULL DEFAULT 1,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_items_product_code
    ON stock_items (product_code) WHERE product_code <> '';

CREATE TABLE IF NOT EXISTS receipts (
    id             UUID PRIMARY KEY,
    reference      TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'draft',
    responsible    TEXT NOT NULL DEFAULT '',
    scheduled_date TIMESTAMPTZ,
    notes          TEXT NOT NULL DEFAULT '',
    receive_from   TEXT NOT NULL,
    to_location    TEXT NOT NULL DEFAULT '',
    contact        TEXT NOT NULL DEFAULT '',
    version        INT NOT NULL DEFAULT 1,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_by     TEXT NOT NULL DEFAULT '',
    updated_by     TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_receipts_reference ON receipts (reference);
CREATE INDEX IF NOT EXISTS idx_receipts_created_at ON receipts (created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS receipt_lines (
    line_id     UUID PRIMARY KEY,
    document_id UUID NOT NULL REFERENCES receipts (id) ON DELETE CASCADE,
    line_no     INT NOT NULL,
    product_name TEXT NOT NULL,
    product_code TEXT NOT NULL DEFAULT '',
    quantity    BIGINT NOT NULL,
    unit_price  NUMERIC(19, 4) NOT NULL DEFAULT 0,
    total_price NUMERIC(19, 4) NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_receipt_lines_document ON receipt_lines (document_id);

CREATE TABLE IF NOT EXISTS deliveries (
    id               UUID PRIMARY KEY,
    reference        TEXT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'draft',
    responsible      TEXT NOT NULL DEFAULT '',
    scheduled_date   TIMESTAMPTZ,
    notes            TEXT NOT NULL DEFAULT '',
    delivery_address TEXT NOT NULL,
    operation_type   TEXT NOT NULL DEFAULT '',
    from_location    TEXT NOT NULL DEFAULT '',
    to_location      TEXT NOT NULL DEFAULT '',
    contact          TEXT NOT NULL DEFAULT '',
    version          INT NOT NULL DEFAULT 1,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_by       TEXT NOT NULL DEFAULT '',
    updated_by       TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_deliveries_reference ON deliveries (reference);
CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries (created_at DESC, id DESC);

CREATE TABLE IF NOT EXISTS delivery_lines (
    line_id     UUID PRIMARY KEY,
    document_id UUID NOT NULL REFERENCES deliveries (id) ON DELETE CASCADE,
    line_no     INT NOT NULL,
    product_name TEXT NOT NULL,
    product_code TEXT NOT NULL DEFAULT '',
    quantity    BIGINT NOT NULL,
    unit_price  NUMERIC(19, 4) NOT NULL DEFAULT 0,
    total_price NUMERIC(19, 4) NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_delivery_lines_document ON delivery_lines (document_id);

CREATE TABLE IF NOT EXISTS history (
    id                  UUID PRIMARY KEY,
    type                TEXT NOT NULL,
    operation           TEXT NOT NULL,
    product_name        TEXT NOT NULL DEFAULT '',
    product_code        TEXT NOT NULL DEFAULT '',
    quantity            BIGINT,
    previous_quantity   BIGINT,
    new_quantity        BIGINT,
    price               NUMERIC(19, 4),
    related_id          UUID,
    description         TEXT NOT NULL DEFAULT '',
    snapshot            JSONB,
    snapshot_compressed BYTEA,
    compression_algo    TEXT NOT NULL DEFAULT 'none',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_history_created_at ON history (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_history_related ON history (related_id);
`

// ProvisionerConfig configures tenant database creation.
type ProvisionerConfig struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Provisioner creates and migrates per-user inventory databases.
// It needs an admin connection (CREATE DATABASE cannot run inside the
// application pool's database).
type Provisioner struct {
	adminPool *pgxpool.Pool
	config    ProvisionerConfig
}

// NewProvisioner creates a provisioner over an admin pool.
func NewProvisioner(adminPool *pgxpool.Pool, config ProvisionerConfig) *Provisioner {
	return &Provisioner{
		adminPool: adminPool,
		config:    config,
	}
}

// EnsureTenant creates the user's database if missing and applies the schema.
// Safe to call repeatedly.
func (p *Provisioner) EnsureTenant(ctx context.Context, userID int64) error {
	dbName := DBName(userID)

	// CREATE DATABASE does not support IF NOT EXISTS.
	_, err := p.adminPool.Exec(ctx, fmt.Sprintf(`CREATE DATABASE %q`, dbName))
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}

	dsn := DSN(p.config.DBHost, p.config.DBPort, p.config.DBUser, p.config.DBPassword, dbName, p.config.DBSSLMode)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", dbName, err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema to %s: %w", dbName, err)
	}

	logger.Info(ctx, "tenant database ready",
		"user_id", userID,
		"db_name", dbName)

	return nil
}
