package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// PartStore defines operations for part templates, parts, iterations and
// CAD conversions.
type PartStore interface {
	CreateTemplate(ctx context.Context, workspaceID string, t plm.PartTemplate) error
	Create(ctx context.Context, workspaceID, login string, part plm.PartCreation) (*plm.PartRevision, error)
	Search(ctx context.Context, workspaceID, number string, limit int) ([]plm.PartMaster, error)
	GetRevision(ctx context.Context, workspaceID, number, version string) (*plm.PartRevision, error)
	UpdateIteration(ctx context.Context, workspaceID, login string, it plm.PartIteration) error
	CheckIn(ctx context.Context, workspaceID, number, version, login string) error
	CheckOut(ctx context.Context, workspaceID, number, version, login string) error
	AddFile(ctx context.Context, workspaceID, number, version string, iteration int, kind, name string, size int64) error
	ConversionStatus(ctx context.Context, workspaceID, number, version string, iteration int) (*plm.ConversionStatus, error)
}

// SQLitePartStore implements PartStore backed by SQLite.
type SQLitePartStore struct {
	db *sql.DB
}

// NewSQLitePartStore creates a new SQLitePartStore.
func NewSQLitePartStore(db *sql.DB) *SQLitePartStore {
	return &SQLitePartStore{db: db}
}

// CreateTemplate registers a part template. A duplicate reference is a
// conflict.
func (s *SQLitePartStore) CreateTemplate(ctx context.Context, workspaceID string, t plm.PartTemplate) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM part_templates WHERE workspace_id = ? AND reference = ?`,
		workspaceID, t.Reference,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check part template: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("part template %q: %w", t.Reference, ErrConflict)
	}

	attrs, err := marshal(t.Attributes)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO part_templates
		 (workspace_id, reference, part_type, mask, id_generation, attributes_locked, attributes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workspaceID, t.Reference, t.PartType, t.Mask, t.IDGeneration, t.AttributesLocked, attrs,
	); err != nil {
		return fmt.Errorf("create part template: %w", err)
	}
	return nil
}

// Create inserts a part master at version A, checked out by its creator,
// with one empty iteration. A duplicate part number is a conflict.
func (s *SQLitePartStore) Create(ctx context.Context, workspaceID, login string, part plm.PartCreation) (*plm.PartRevision, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM parts WHERE workspace_id = ? AND number = ?`,
		workspaceID, part.Number,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check part: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("part %q: %w", part.Number, ErrConflict)
	}

	if part.TemplateID != "" {
		var known int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM part_templates WHERE workspace_id = ? AND reference = ?`,
			workspaceID, part.TemplateID,
		).Scan(&known); err != nil {
			return nil, fmt.Errorf("check template: %w", err)
		}
		if known == 0 {
			return nil, fmt.Errorf("part template %q: %w", part.TemplateID, ErrNotFound)
		}
	}

	const version = "A"
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO parts
		 (workspace_id, number, version, name, description, standard_part, template_id, checked_out, checkout_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)`,
		workspaceID, part.Number, version, part.Name, part.Description, part.StandardPart,
		part.TemplateID, login, now(),
	); err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO part_iterations (workspace_id, number, version, iteration) VALUES (?, ?, ?, 1)`,
		workspaceID, part.Number, version,
	); err != nil {
		return nil, fmt.Errorf("create first iteration: %w", err)
	}

	return s.GetRevision(ctx, workspaceID, part.Number, version)
}

// Search looks up part masters whose number contains the query, newest
// revision included.
func (s *SQLitePartStore) Search(ctx context.Context, workspaceID, number string, limit int) ([]plm.PartMaster, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT number FROM parts
		 WHERE workspace_id = ? AND number LIKE '%' || ? || '%' ORDER BY number LIMIT ?`,
		workspaceID, number, limit)
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan part number: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	masters := []plm.PartMaster{}
	for _, n := range numbers {
		rev, err := s.lastRevision(ctx, workspaceID, n)
		if err != nil {
			return nil, err
		}
		masters = append(masters, plm.PartMaster{
			WorkspaceID:  workspaceID,
			Number:       n,
			Name:         rev.Name,
			LastRevision: rev,
		})
	}
	return masters, nil
}

// GetRevision fetches one part revision with all its iterations.
func (s *SQLitePartStore) GetRevision(ctx context.Context, workspaceID, number, version string) (*plm.PartRevision, error) {
	rev := plm.PartRevision{WorkspaceID: workspaceID, Number: number, Version: version}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, checked_out, checkout_by FROM parts
		 WHERE workspace_id = ? AND number = ? AND version = ?`,
		workspaceID, number, version,
	).Scan(&rev.Name, &rev.CheckedOut, &rev.CheckOutBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("part %s-%s: %w", number, version, ErrNotFound)
		}
		return nil, fmt.Errorf("get part: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, note, attributes, components, links FROM part_iterations
		 WHERE workspace_id = ? AND number = ? AND version = ? ORDER BY iteration`,
		workspaceID, number, version)
	if err != nil {
		return nil, fmt.Errorf("load iterations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		it := plm.PartIteration{WorkspaceID: workspaceID, Number: number, Version: version}
		var attrs, components, links string
		if err := rows.Scan(&it.Iteration, &it.IterationNote, &attrs, &components, &links); err != nil {
			return nil, fmt.Errorf("scan iteration: %w", err)
		}
		if err := unmarshal(attrs, &it.Attributes); err != nil {
			return nil, err
		}
		if err := unmarshal(components, &it.Components); err != nil {
			return nil, err
		}
		if err := unmarshal(links, &it.DocumentLinks); err != nil {
			return nil, err
		}
		rev.Iterations = append(rev.Iterations, it)
	}
	return &rev, rows.Err()
}

// UpdateIteration replaces the attributes, components and links of the
// latest iteration. The revision must be checked out by the calling identity.
func (s *SQLitePartStore) UpdateIteration(ctx context.Context, workspaceID, login string, it plm.PartIteration) error {
	rev, err := s.GetRevision(ctx, workspaceID, it.Number, it.Version)
	if err != nil {
		return err
	}
	if err := requireCheckedOutBy(rev.CheckedOut, rev.CheckOutBy, login); err != nil {
		return fmt.Errorf("part %s-%s: %w", it.Number, it.Version, err)
	}
	last := rev.LastIteration()
	if last == nil || last.Iteration != it.Iteration {
		return fmt.Errorf("iteration %d is not the latest: %w", it.Iteration, ErrConflict)
	}

	attrs, err := marshal(it.Attributes)
	if err != nil {
		return err
	}
	components, err := marshal(it.Components)
	if err != nil {
		return err
	}
	links, err := marshal(it.DocumentLinks)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE part_iterations SET note = ?, attributes = ?, components = ?, links = ?
		 WHERE workspace_id = ? AND number = ? AND version = ? AND iteration = ?`,
		it.IterationNote, attrs, components, links,
		workspaceID, it.Number, it.Version, it.Iteration,
	); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}
	return nil
}

// CheckIn freezes the latest iteration and releases the revision.
func (s *SQLitePartStore) CheckIn(ctx context.Context, workspaceID, number, version, login string) error {
	rev, err := s.GetRevision(ctx, workspaceID, number, version)
	if err != nil {
		return err
	}
	if err := requireCheckedOutBy(rev.CheckedOut, rev.CheckOutBy, login); err != nil {
		return fmt.Errorf("part %s-%s: %w", number, version, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE parts SET checked_out = FALSE, checkout_by = ''
		 WHERE workspace_id = ? AND number = ? AND version = ?`,
		workspaceID, number, version,
	); err != nil {
		return fmt.Errorf("check in part: %w", err)
	}
	return nil
}

// CheckOut reserves the revision for the calling identity and opens a new
// iteration copied from the last one.
func (s *SQLitePartStore) CheckOut(ctx context.Context, workspaceID, number, version, login string) error {
	rev, err := s.GetRevision(ctx, workspaceID, number, version)
	if err != nil {
		return err
	}
	if rev.CheckedOut {
		return fmt.Errorf("part %s-%s: %w", number, version, ErrCheckedOut)
	}
	last := rev.LastIteration()
	if last == nil {
		return fmt.Errorf("part %s-%s has no iteration", number, version)
	}

	attrs, err := marshal(last.Attributes)
	if err != nil {
		return err
	}
	components, err := marshal(last.Components)
	if err != nil {
		return err
	}
	links, err := marshal(last.DocumentLinks)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO part_iterations
		 (workspace_id, number, version, iteration, note, attributes, components, links)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		workspaceID, number, version, last.Iteration+1, last.IterationNote, attrs, components, links,
	); err != nil {
		return fmt.Errorf("open next iteration: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE parts SET checked_out = TRUE, checkout_by = ?
		 WHERE workspace_id = ? AND number = ? AND version = ?`,
		login, workspaceID, number, version,
	); err != nil {
		return fmt.Errorf("check out part: %w", err)
	}
	return nil
}

// AddFile records an uploaded file on one iteration. A native CAD upload
// starts a simulated conversion.
func (s *SQLitePartStore) AddFile(ctx context.Context, workspaceID, number, version string, iteration int, kind, name string, size int64) error {
	if _, err := s.GetRevision(ctx, workspaceID, number, version); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO part_files
		 (workspace_id, number, version, iteration, kind, name, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workspaceID, number, version, iteration, kind, name, size,
	); err != nil {
		return fmt.Errorf("record file: %w", err)
	}

	if kind == "nativecad" {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO conversions
			 (workspace_id, number, version, iteration, status, polls)
			 VALUES (?, ?, ?, ?, ?, 0)`,
			workspaceID, number, version, iteration, plm.ConversionPending,
		); err != nil {
			return fmt.Errorf("start conversion: %w", err)
		}
	}
	return nil
}

// ConversionStatus reports the conversion state of one iteration's native
// CAD file. The simulated conversion stays pending for the first poll and
// completes on the next.
func (s *SQLitePartStore) ConversionStatus(ctx context.Context, workspaceID, number, version string, iteration int) (*plm.ConversionStatus, error) {
	var status string
	var polls int
	err := s.db.QueryRowContext(ctx,
		`SELECT status, polls FROM conversions
		 WHERE workspace_id = ? AND number = ? AND version = ? AND iteration = ?`,
		workspaceID, number, version, iteration,
	).Scan(&status, &polls)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conversion for %s-%s: %w", number, version, ErrNotFound)
		}
		return nil, fmt.Errorf("get conversion: %w", err)
	}

	if status == plm.ConversionPending && polls >= 1 {
		status = plm.ConversionDone
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE conversions SET status = ?, polls = polls + 1
		 WHERE workspace_id = ? AND number = ? AND version = ? AND iteration = ?`,
		status, workspaceID, number, version, iteration,
	); err != nil {
		return nil, fmt.Errorf("update conversion: %w", err)
	}

	return &plm.ConversionStatus{
		Number:    number,
		Version:   version,
		Iteration: iteration,
		Status:    status,
	}, nil
}

// lastRevision returns the newest version row of a part number.
func (s *SQLitePartStore) lastRevision(ctx context.Context, workspaceID, number string) (*plm.PartRevision, error) {
	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM parts WHERE workspace_id = ? AND number = ?
		 ORDER BY version DESC LIMIT 1`,
		workspaceID, number,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("part %q: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("resolve last revision: %w", err)
	}
	return s.GetRevision(ctx, workspaceID, number, version)
}
