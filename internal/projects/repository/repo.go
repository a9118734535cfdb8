package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

const projectColumns = `id, title, description, detailed_description, category, status,
       tags, tech_stack, metrics, image_path, image_url, created_by, created_at, updated_at`

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts p, assigning its ID and both timestamps.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.Title == "" {
		return fmt.Errorf("title required")
	}

	tags, techStack, metrics, err := encodeJSONColumns(p)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO projects (
	id, title, description, detailed_description, category, status,
	tags, tech_stack, metrics, image_path, image_url, created_by
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at, updated_at;
`
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		err = r.db.QueryRowContext(ctx, q,
			id,
			p.Title,
			nullString(p.Description),
			nullString(p.DetailedDescription),
			nullString(p.Category),
			string(p.Status),
			string(tags),
			string(techStack),
			string(metrics),
			nullString(p.ImagePath),
			nullString(p.ImageURL),
			nullString(p.CreatedBy),
		).Scan(&p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			p.ID = id
			return nil
		}

		// unique violation on id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return fmt.Errorf("failed to generate unique project id")
}

// GetByID returns domain.ErrNotFound for unknown or malformed ids.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// List returns a page of projects, newest first.
func (r *ProjectRepository) List(ctx context.Context, skip, limit int) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes every mutable field of p, including image fields, and
// refreshes updated_at.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return domain.ErrNotFound
	}

	tags, techStack, metrics, err := encodeJSONColumns(p)
	if err != nil {
		return err
	}

	const q = `
UPDATE projects
SET title = $2, description = $3, detailed_description = $4, category = $5, status = $6,
    tags = $7, tech_stack = $8, metrics = $9, image_path = $10, image_url = $11,
    updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	err = r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Title,
		nullString(p.Description),
		nullString(p.DetailedDescription),
		nullString(p.Category),
		string(p.Status),
		string(tags),
		string(techStack),
		string(metrics),
		nullString(p.ImagePath),
		nullString(p.ImageURL),
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// SetImage sets or clears (empty url) the image fields and refreshes
// updated_at.
func (r *ProjectRepository) SetImage(ctx context.Context, id, key, url string) (*domain.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	var path, link sql.NullString
	if url != "" {
		path = sql.NullString{String: key, Valid: true}
		link = sql.NullString{String: url, Valid: true}
	}

	q := `
UPDATE projects
SET image_path = $2, image_url = $3, updated_at = now()
WHERE id = $1
RETURNING ` + projectColumns
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id, path, link))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set project image: %w", err)
	}
	return p, nil
}

// Delete removes the row. It reports false when nothing matched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status string
	var description, detailed, category, imagePath, imageURL, createdBy sql.NullString
	var tagsJSON, techJSON, metricsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.Title,
		&description,
		&detailed,
		&category,
		&status,
		&tagsJSON,
		&techJSON,
		&metricsJSON,
		&imagePath,
		&imageURL,
		&createdBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status, err = domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	p.Description = fromNull(description)
	p.DetailedDescription = fromNull(detailed)
	p.Category = fromNull(category)
	p.ImagePath = fromNull(imagePath)
	p.ImageURL = fromNull(imageURL)
	p.CreatedBy = fromNull(createdBy)

	// Parse JSONB columns
	p.Tags = decodeStrings(tagsJSON)
	p.TechStack = decodeStrings(techJSON)
	p.Metrics = decodeMetrics(metricsJSON)

	return &p, nil
}

// decodeMetrics keeps numbers as json.Number so the stored JSONB value is
// returned unchanged.
func decodeMetrics(raw []byte) map[string]interface{} {
	out := map[string]interface{}{}
	if len(raw) == 0 {
		return out
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil || out == nil {
		return map[string]interface{}{}
	}
	return out
}

func encodeJSONColumns(p *domain.Project) (tags, techStack, metrics []byte, err error) {
	if tags, err = json.Marshal(nonNil(p.Tags)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	if techStack, err = json.Marshal(nonNil(p.TechStack)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode tech_stack: %w", err)
	}
	m := p.Metrics
	if m == nil {
		m = map[string]interface{}{}
	}
	if metrics, err = json.Marshal(m); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: metrics: %v", domain.ErrMalformedInput, err)
	}
	return tags, techStack, metrics, nil
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
