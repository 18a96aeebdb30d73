package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// Change item kinds stored in the change_items table.
const (
	changeKindRequest = "request"
	changeKindIssue   = "issue"
	changeKindOrder   = "order"
)

// ChangeStore defines operations for change requests, issues and orders.
type ChangeStore interface {
	CreateRequest(ctx context.Context, workspaceID string, request plm.ChangeRequest) (*plm.ChangeRequest, error)
	CreateIssue(ctx context.Context, workspaceID string, issue plm.ChangeIssue) (*plm.ChangeIssue, error)
	CreateOrder(ctx context.Context, workspaceID string, order plm.ChangeOrder) (*plm.ChangeOrder, error)
}

// SQLiteChangeStore implements ChangeStore backed by SQLite.
type SQLiteChangeStore struct {
	db *sql.DB
}

// NewSQLiteChangeStore creates a new SQLiteChangeStore.
func NewSQLiteChangeStore(db *sql.DB) *SQLiteChangeStore {
	return &SQLiteChangeStore{db: db}
}

// CreateRequest inserts a change request.
func (s *SQLiteChangeStore) CreateRequest(ctx context.Context, workspaceID string, request plm.ChangeRequest) (*plm.ChangeRequest, error) {
	request.WorkspaceID = workspaceID
	id, err := s.insert(ctx, workspaceID, changeKindRequest, request.Name, request)
	if err != nil {
		return nil, err
	}
	request.ID = id
	return &request, nil
}

// CreateIssue inserts a change issue.
func (s *SQLiteChangeStore) CreateIssue(ctx context.Context, workspaceID string, issue plm.ChangeIssue) (*plm.ChangeIssue, error) {
	issue.WorkspaceID = workspaceID
	id, err := s.insert(ctx, workspaceID, changeKindIssue, issue.Name, issue)
	if err != nil {
		return nil, err
	}
	issue.ID = id
	return &issue, nil
}

// CreateOrder inserts a change order.
func (s *SQLiteChangeStore) CreateOrder(ctx context.Context, workspaceID string, order plm.ChangeOrder) (*plm.ChangeOrder, error) {
	order.WorkspaceID = workspaceID
	id, err := s.insert(ctx, workspaceID, changeKindOrder, order.Name, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	return &order, nil
}

func (s *SQLiteChangeStore) insert(ctx context.Context, workspaceID, kind, name string, payload any) (int, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM change_items WHERE workspace_id = ? AND kind = ? AND name = ?`,
		workspaceID, kind, name,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check change %s: %w", kind, err)
	}
	if exists > 0 {
		return 0, fmt.Errorf("change %s %q: %w", kind, name, ErrConflict)
	}

	data, err := marshal(payload)
	if err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO change_items (workspace_id, kind, name, payload) VALUES (?, ?, ?, ?)`,
		workspaceID, kind, name, data,
	)
	if err != nil {
		return 0, fmt.Errorf("create change %s: %w", kind, err)
	}
	id, _ := result.LastInsertId()
	return int(id), nil
}
