package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// LOVStore defines operations for workspace lists of values.
type LOVStore interface {
	Create(ctx context.Context, workspaceID string, lov plm.ListOfValues) error
	Get(ctx context.Context, workspaceID, name string) (*plm.ListOfValues, error)
}

// SQLiteLOVStore implements LOVStore backed by SQLite.
type SQLiteLOVStore struct {
	db *sql.DB
}

// NewSQLiteLOVStore creates a new SQLiteLOVStore.
func NewSQLiteLOVStore(db *sql.DB) *SQLiteLOVStore {
	return &SQLiteLOVStore{db: db}
}

// Create registers a list of values. A duplicate name is a conflict.
func (s *SQLiteLOVStore) Create(ctx context.Context, workspaceID string, lov plm.ListOfValues) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lovs WHERE workspace_id = ? AND name = ?`,
		workspaceID, lov.Name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check lov: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("lov %q: %w", lov.Name, ErrConflict)
	}

	values, err := marshal(lov.Values)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO lovs (workspace_id, name, item_list) VALUES (?, ?, ?)`,
		workspaceID, lov.Name, values,
	); err != nil {
		return fmt.Errorf("create lov: %w", err)
	}
	return nil
}

// Get fetches a list of values by name.
func (s *SQLiteLOVStore) Get(ctx context.Context, workspaceID, name string) (*plm.ListOfValues, error) {
	var values string
	err := s.db.QueryRowContext(ctx,
		`SELECT item_list FROM lovs WHERE workspace_id = ? AND name = ?`,
		workspaceID, name,
	).Scan(&values)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lov %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("get lov: %w", err)
	}

	lov := plm.ListOfValues{WorkspaceID: workspaceID, Name: name}
	if err := unmarshal(values, &lov.Values); err != nil {
		return nil, err
	}
	return &lov, nil
}
