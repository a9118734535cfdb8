package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/projects-catalog/config"
)

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db:5432/catalog", DSN(&config.DatabaseConfig{URL: "postgres://u:p@db:5432/catalog", Host: "ignored"}))
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=projects_catalog sslmode=disable",
		DSN(&config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "secret", Name: "projects_catalog"}),
	)
}

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	if r.failAt > 0 && len(r.stmts) == r.failAt {
		return pgconn.CommandTag{}, errors.New("permission denied")
	}
	return pgconn.CommandTag{}, nil
}

func TestMigrate(t *testing.T) {
	ex := &recordingExecer{}
	require.NoError(t, Migrate(context.Background(), ex))
	require.Len(t, ex.stmts, len(migrations))

	all := strings.Join(ex.stmts, "\n")
	for _, col := range []string{"detailed_description", "tech_stack", "image_path", "image_url", "created_by", "updated_at", "sso_id", "is_active"} {
		assert.Contains(t, all, col)
	}
	for _, s := range ex.stmts {
		assert.Contains(t, s, "IF NOT EXISTS")
	}
}

func TestMigrate_StopsOnError(t *testing.T) {
	ex := &recordingExecer{failAt: 2}
	err := Migrate(context.Background(), ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index_projects_created_at")
	assert.Len(t, ex.stmts, 2)
}
