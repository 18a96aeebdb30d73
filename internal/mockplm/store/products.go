package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// ProductStore defines operations for configuration items, baselines,
// product instances and configurations.
type ProductStore interface {
	Create(ctx context.Context, workspaceID string, item plm.ConfigurationItem) error
	Structure(ctx context.Context, workspaceID, productID string) (*plm.StructureNode, error)
	CreatePathToPathLink(ctx context.Context, workspaceID, productID string, link plm.PathToPathLink) error
	CreateBaseline(ctx context.Context, workspaceID string, baseline plm.Baseline) (*plm.Baseline, error)
	Baselines(ctx context.Context, workspaceID, productID string) ([]plm.Baseline, error)
	CreateInstance(ctx context.Context, workspaceID string, instance plm.ProductInstance) error
	CreateConfiguration(ctx context.Context, workspaceID string, cfg plm.ProductConfiguration) error
}

// SQLiteProductStore implements ProductStore backed by SQLite.
type SQLiteProductStore struct {
	db    *sql.DB
	parts *SQLitePartStore
}

// NewSQLiteProductStore creates a new SQLiteProductStore.
func NewSQLiteProductStore(db *sql.DB) *SQLiteProductStore {
	return &SQLiteProductStore{db: db, parts: NewSQLitePartStore(db)}
}

// Create inserts a configuration item. The root part must exist; a duplicate
// product id is a conflict.
func (s *SQLiteProductStore) Create(ctx context.Context, workspaceID string, item plm.ConfigurationItem) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE workspace_id = ? AND id = ?`,
		workspaceID, item.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("product %q: %w", item.ID, ErrConflict)
	}

	var known int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parts WHERE workspace_id = ? AND number = ?`,
		workspaceID, item.DesignItemNumber,
	).Scan(&known); err != nil {
		return fmt.Errorf("check root part: %w", err)
	}
	if known == 0 {
		return fmt.Errorf("root part %q: %w", item.DesignItemNumber, ErrNotFound)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO products (workspace_id, id, design_item_number, description) VALUES (?, ?, ?, ?)`,
		workspaceID, item.ID, item.DesignItemNumber, item.Description,
	); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Structure expands the product's bill of materials from the latest part
// iterations. A node's path is its parent path plus its own number.
func (s *SQLiteProductStore) Structure(ctx context.Context, workspaceID, productID string) (*plm.StructureNode, error) {
	rootNumber, err := s.rootPart(ctx, workspaceID, productID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, workspaceID, rootNumber, rootNumber, 0)
}

// CreatePathToPathLink adds a typed link between two structure paths.
func (s *SQLiteProductStore) CreatePathToPathLink(ctx context.Context, workspaceID, productID string, link plm.PathToPathLink) error {
	if _, err := s.rootPart(ctx, workspaceID, productID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO path_to_path_links
		 (workspace_id, product_id, type, description, source_path, target_path)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		workspaceID, productID, link.Type, link.Description, link.SourcePath, link.TargetPath,
	); err != nil {
		return fmt.Errorf("create path-to-path link: %w", err)
	}
	return nil
}

// CreateBaseline snapshots the product and returns the stored baseline with
// its generated id.
func (s *SQLiteProductStore) CreateBaseline(ctx context.Context, workspaceID string, baseline plm.Baseline) (*plm.Baseline, error) {
	if _, err := s.rootPart(ctx, workspaceID, baseline.ConfigurationItemID); err != nil {
		return nil, err
	}

	optional, err := marshal(baseline.OptionalUsageLinks)
	if err != nil {
		return nil, err
	}
	pathLinks, err := marshal(baseline.PathToPathLinks)
	if err != nil {
		return nil, err
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO baselines (workspace_id, product_id, name, type, optional_links, path_links)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		workspaceID, baseline.ConfigurationItemID, baseline.Name, baseline.Type, optional, pathLinks,
	)
	if err != nil {
		return nil, fmt.Errorf("create baseline: %w", err)
	}
	id, _ := result.LastInsertId()
	baseline.ID = int(id)
	return &baseline, nil
}

// Baselines lists the baselines of one product.
func (s *SQLiteProductStore) Baselines(ctx context.Context, workspaceID, productID string) ([]plm.Baseline, error) {
	if _, err := s.rootPart(ctx, workspaceID, productID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, optional_links, path_links FROM baselines
		 WHERE workspace_id = ? AND product_id = ? ORDER BY id`,
		workspaceID, productID)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	baselines := []plm.Baseline{}
	for rows.Next() {
		b := plm.Baseline{ConfigurationItemID: productID}
		var optional, pathLinks string
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &optional, &pathLinks); err != nil {
			return nil, fmt.Errorf("scan baseline: %w", err)
		}
		if err := unmarshal(optional, &b.OptionalUsageLinks); err != nil {
			return nil, err
		}
		if err := unmarshal(pathLinks, &b.PathToPathLinks); err != nil {
			return nil, err
		}
		baselines = append(baselines, b)
	}
	return baselines, rows.Err()
}

// CreateInstance creates a serial-numbered product instance. The baseline
// must exist for the product.
func (s *SQLiteProductStore) CreateInstance(ctx context.Context, workspaceID string, instance plm.ProductInstance) error {
	var known int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM baselines WHERE workspace_id = ? AND product_id = ? AND id = ?`,
		workspaceID, instance.ConfigurationItemID, instance.BaselineID,
	).Scan(&known); err != nil {
		return fmt.Errorf("check baseline: %w", err)
	}
	if known == 0 {
		return fmt.Errorf("baseline %d: %w", instance.BaselineID, ErrNotFound)
	}

	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_instances
		 WHERE workspace_id = ? AND product_id = ? AND serial_number = ?`,
		workspaceID, instance.ConfigurationItemID, instance.SerialNumber,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check instance: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("serial number %q: %w", instance.SerialNumber, ErrConflict)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO product_instances (workspace_id, product_id, serial_number, baseline_id)
		 VALUES (?, ?, ?, ?)`,
		workspaceID, instance.ConfigurationItemID, instance.SerialNumber, instance.BaselineID,
	); err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	return nil
}

// CreateConfiguration records a named optional-link selection for a product.
func (s *SQLiteProductStore) CreateConfiguration(ctx context.Context, workspaceID string, cfg plm.ProductConfiguration) error {
	if _, err := s.rootPart(ctx, workspaceID, cfg.ConfigurationItemID); err != nil {
		return err
	}
	optional, err := marshal(cfg.OptionalUsageLinks)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO product_configurations
		 (workspace_id, product_id, name, description, optional_links)
		 VALUES (?, ?, ?, ?, ?)`,
		workspaceID, cfg.ConfigurationItemID, cfg.Name, cfg.Description, optional,
	); err != nil {
		return fmt.Errorf("create configuration: %w", err)
	}
	return nil
}

func (s *SQLiteProductStore) rootPart(ctx context.Context, workspaceID, productID string) (string, error) {
	var number string
	err := s.db.QueryRowContext(ctx,
		`SELECT design_item_number FROM products WHERE workspace_id = ? AND id = ?`,
		workspaceID, productID,
	).Scan(&number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("product %q: %w", productID, ErrNotFound)
		}
		return "", fmt.Errorf("resolve product: %w", err)
	}
	return number, nil
}

const maxStructureDepth = 32

func (s *SQLiteProductStore) expand(ctx context.Context, workspaceID, number, path string, depth int) (*plm.StructureNode, error) {
	if depth > maxStructureDepth {
		return nil, fmt.Errorf("structure under %q exceeds depth %d", number, maxStructureDepth)
	}

	rev, err := s.parts.lastRevision(ctx, workspaceID, number)
	if err != nil {
		return nil, err
	}
	node := &plm.StructureNode{Number: number, Path: path}
	last := rev.LastIteration()
	if last == nil {
		return node, nil
	}

	for _, link := range last.Components {
		child, err := s.expand(ctx, workspaceID, link.Component.Number,
			path+"/"+link.Component.Number, depth+1)
		if err != nil {
			return nil, err
		}
		node.Components = append(node.Components, *child)
	}
	return node, nil
}
