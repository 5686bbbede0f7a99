// Package templates stores named note templates and renders their
// placeholders.
package templates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Template is a named piece of content with literal {placeholder} markers.
// Name is the primary key; creating an existing name replaces it.
type Template struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

const (
	upsertTemplateStatement = `INSERT OR REPLACE INTO templates (name, content) VALUES (?, ?)`
	getTemplateStatement    = `SELECT name, content FROM templates WHERE name = ?`
	listTemplatesStatement  = `SELECT name, content FROM templates ORDER BY name`
	deleteTemplateStatement = `DELETE FROM templates WHERE name = ?`
)

// Create stores a template, replacing any existing template with the same
// name. There is no versioning.
func Create(ctx context.Context, conn *sql.DB, name, content string) error {
	if _, err := conn.ExecContext(ctx, upsertTemplateStatement, name, content); err != nil {
		return fmt.Errorf("failed to store template %q: %w", name, err)
	}
	return nil
}

// Get returns the template with the given name, or nil if it does not exist.
func Get(ctx context.Context, conn *sql.DB, name string) (*Template, error) {
	var tmpl Template
	err := conn.QueryRowContext(ctx, getTemplateStatement, name).Scan(&tmpl.Name, &tmpl.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template %q: %w", name, err)
	}
	return &tmpl, nil
}

// List returns every template ordered by name.
func List(ctx context.Context, conn *sql.DB) ([]Template, error) {
	rows, err := conn.QueryContext(ctx, listTemplatesStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var results []Template
	for rows.Next() {
		var tmpl Template
		if err := rows.Scan(&tmpl.Name, &tmpl.Content); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		results = append(results, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return results, nil
}

// Delete removes a template and reports whether it existed.
func Delete(ctx context.Context, conn *sql.DB, name string) (bool, error) {
	res, err := conn.ExecContext(ctx, deleteTemplateStatement, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete template %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
