package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// WorkflowStore defines operations for roles and workflow templates.
type WorkflowStore interface {
	CreateRole(ctx context.Context, workspaceID string, role plm.Role) (*plm.Role, error)
	CreateWorkflow(ctx context.Context, workspaceID string, model plm.WorkflowModel) error
	Workflows(ctx context.Context, workspaceID string) ([]plm.WorkflowModel, error)
	GetWorkflow(ctx context.Context, workspaceID, id string) (*plm.WorkflowModel, error)
	UpdateWorkflowACL(ctx context.Context, workspaceID, id string, acl plm.ACL) error
}

// SQLiteWorkflowStore implements WorkflowStore backed by SQLite.
type SQLiteWorkflowStore struct {
	db *sql.DB
}

// NewSQLiteWorkflowStore creates a new SQLiteWorkflowStore.
func NewSQLiteWorkflowStore(db *sql.DB) *SQLiteWorkflowStore {
	return &SQLiteWorkflowStore{db: db}
}

// CreateRole registers a role. A duplicate name is a conflict.
func (s *SQLiteWorkflowStore) CreateRole(ctx context.Context, workspaceID string, role plm.Role) (*plm.Role, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE workspace_id = ? AND name = ?`,
		workspaceID, role.Name,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("role %q: %w", role.Name, ErrConflict)
	}

	role.WorkspaceID = workspaceID
	payload, err := marshal(role)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO roles (workspace_id, name, payload) VALUES (?, ?, ?)`,
		workspaceID, role.Name, payload,
	); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return &role, nil
}

// CreateWorkflow registers a workflow template. Every role its tasks name
// must already exist; a duplicate id is a conflict.
func (s *SQLiteWorkflowStore) CreateWorkflow(ctx context.Context, workspaceID string, model plm.WorkflowModel) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workflows WHERE workspace_id = ? AND id = ?`,
		workspaceID, model.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check workflow: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("workflow %q: %w", model.ID, ErrConflict)
	}

	for _, role := range model.RolesInvolved() {
		var known int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM roles WHERE workspace_id = ? AND name = ?`,
			workspaceID, role.Name,
		).Scan(&known); err != nil {
			return fmt.Errorf("check role: %w", err)
		}
		if known == 0 {
			return fmt.Errorf("role %q: %w", role.Name, ErrNotFound)
		}
	}

	model.WorkspaceID = workspaceID
	payload, err := marshal(model)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO workflows (workspace_id, id, payload) VALUES (?, ?, ?)`,
		workspaceID, model.ID, payload,
	); err != nil {
		return fmt.Errorf("create workflow: %w", err)
	}
	return nil
}

// Workflows lists the workspace's workflow templates.
func (s *SQLiteWorkflowStore) Workflows(ctx context.Context, workspaceID string) ([]plm.WorkflowModel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM workflows WHERE workspace_id = ? ORDER BY id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	models := []plm.WorkflowModel{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		var model plm.WorkflowModel
		if err := unmarshal(payload, &model); err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, rows.Err()
}

// GetWorkflow fetches one workflow template by id.
func (s *SQLiteWorkflowStore) GetWorkflow(ctx context.Context, workspaceID, id string) (*plm.WorkflowModel, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM workflows WHERE workspace_id = ? AND id = ?`,
		workspaceID, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workflow %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get workflow: %w", err)
	}

	var model plm.WorkflowModel
	if err := unmarshal(payload, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// UpdateWorkflowACL replaces a workflow template's access control list.
func (s *SQLiteWorkflowStore) UpdateWorkflowACL(ctx context.Context, workspaceID, id string, acl plm.ACL) error {
	payload, err := marshal(acl)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE workflows SET acl = ? WHERE workspace_id = ? AND id = ?`,
		payload, workspaceID, id,
	)
	if err != nil {
		return fmt.Errorf("update workflow acl: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("workflow %q: %w", id, ErrNotFound)
	}
	return nil
}
