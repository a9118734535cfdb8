package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// migrations are idempotent and applied in order on every start.
var migrations = []struct {
	name string
	sql  string
}{
	{"create_projects", `
CREATE TABLE IF NOT EXISTS projects (
	id                   UUID PRIMARY KEY,
	title                VARCHAR(200) NOT NULL,
	description          TEXT,
	detailed_description TEXT,
	category             VARCHAR(100),
	status               TEXT NOT NULL DEFAULT 'Development'
	                     CHECK (status IN ('Development', 'Active', 'Inactive', 'Archived')),
	tags                 JSONB NOT NULL DEFAULT '[]'::jsonb,
	tech_stack           JSONB NOT NULL DEFAULT '[]'::jsonb,
	metrics              JSONB NOT NULL DEFAULT '{}'::jsonb,
	image_path           TEXT,
	image_url            TEXT,
	created_by           TEXT,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{"index_projects_created_at", `CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects (created_at DESC, id)`},
	{"create_admins", `
CREATE TABLE IF NOT EXISTS admins (
	sso_id    TEXT PRIMARY KEY,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	added_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
}

// Migrate creates the catalog schema if it does not exist.
func Migrate(ctx context.Context, db Execer) error {
	for _, m := range migrations {
		if _, err := db.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}
	return nil
}
