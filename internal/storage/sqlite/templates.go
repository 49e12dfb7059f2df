package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// CreateTemplate persists a new parsing template.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, tpl *models.ParsingTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	if tpl.CreatedAt == 0 {
		tpl.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parsing_templates (id, tenant_id, template_name, column_mapping, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.TenantID, tpl.TemplateName, string(tpl.ColumnMapping), tpl.IsActive, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

// GetTemplate retrieves a template by ID, scoped to one tenant.
func (s *SQLiteStore) GetTemplate(ctx context.Context, tenantID, id string) (*models.ParsingTemplate, error) {
	tpl := &models.ParsingTemplate{}
	var mapping string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, template_name, column_mapping, is_active, created_at
		 FROM parsing_templates WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	).Scan(&tpl.ID, &tpl.TenantID, &tpl.TemplateName, &mapping, &tpl.IsActive, &tpl.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	tpl.ColumnMapping = []byte(mapping)
	return tpl, nil
}

// ListTemplates returns a tenant's templates, newest first.
func (s *SQLiteStore) ListTemplates(ctx context.Context, tenantID string) ([]*models.ParsingTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, template_name, column_mapping, is_active, created_at
		 FROM parsing_templates WHERE tenant_id = ? ORDER BY created_at DESC, id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.ParsingTemplate
	for rows.Next() {
		tpl := &models.ParsingTemplate{}
		var mapping string
		if err := rows.Scan(&tpl.ID, &tpl.TenantID, &tpl.TemplateName, &mapping, &tpl.IsActive, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		tpl.ColumnMapping = []byte(mapping)
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate replaces a template's name, mapping, and active flag.
func (s *SQLiteStore) UpdateTemplate(ctx context.Context, tpl *models.ParsingTemplate) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE parsing_templates SET template_name = ?, column_mapping = ?, is_active = ?
		 WHERE id = ? AND tenant_id = ?`,
		tpl.TemplateName, string(tpl.ColumnMapping), tpl.IsActive, tpl.ID, tpl.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check template update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %s: %w", tpl.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteTemplate removes a template, scoped to one tenant.
func (s *SQLiteStore) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM parsing_templates WHERE id = ? AND tenant_id = ?",
		id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check template delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
