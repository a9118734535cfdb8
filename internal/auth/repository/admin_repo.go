package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth/domain"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetBySSOID retrieves an admin regardless of its active flag.
func (r *AdminRepository) GetBySSOID(ctx context.Context, ssoID string) (*domain.Admin, error) {
	query := `
		SELECT sso_id, is_active, added_at
		FROM admins
		WHERE sso_id = $1
	`

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, ssoID).Scan(
		&admin.SSOID,
		&admin.IsActive,
		&admin.AddedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// IsActive reports whether ssoID is a known, active admin.
func (r *AdminRepository) IsActive(ctx context.Context, ssoID string) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE sso_id = $1 AND is_active)`,
		ssoID,
	).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return active, nil
}

// Upsert adds an admin or reactivates an existing one.
func (r *AdminRepository) Upsert(ctx context.Context, ssoID string) (*domain.Admin, error) {
	query := `
		INSERT INTO admins (sso_id, is_active)
		VALUES ($1, TRUE)
		ON CONFLICT (sso_id) DO UPDATE
		SET is_active = TRUE
		RETURNING sso_id, is_active, added_at
	`

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, ssoID).Scan(
		&admin.SSOID,
		&admin.IsActive,
		&admin.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return &admin, nil
}

// Deactivate clears the active flag. It returns ErrAdminNotFound when no row matched.
func (r *AdminRepository) Deactivate(ctx context.Context, ssoID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET is_active = FALSE WHERE sso_id = $1`,
		ssoID,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate admin: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// List returns every admin, oldest first.
func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sso_id, is_active, added_at FROM admins ORDER BY added_at, sso_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var out []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.SSOID, &a.IsActive, &a.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
