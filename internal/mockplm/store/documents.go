package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// DocumentStore defines operations for document templates, documents and
// their iterations.
type DocumentStore interface {
	CreateTemplate(ctx context.Context, workspaceID string, t plm.DocumentTemplate) error
	Create(ctx context.Context, workspaceID, folder, login string, doc plm.DocumentCreation) (*plm.DocumentRevision, error)
	GetRevision(ctx context.Context, workspaceID, documentID, version string) (*plm.DocumentRevision, error)
	UpdateIteration(ctx context.Context, workspaceID, login string, it plm.DocumentIteration) error
	CheckIn(ctx context.Context, workspaceID, documentID, version, login string) error
	CheckOut(ctx context.Context, workspaceID, documentID, version, login string) error
	AddFile(ctx context.Context, workspaceID, documentID, version string, iteration int, name string, size int64) error
}

// SQLiteDocumentStore implements DocumentStore backed by SQLite.
type SQLiteDocumentStore struct {
	db         *sql.DB
	workspaces *SQLiteWorkspaceStore
}

// NewSQLiteDocumentStore creates a new SQLiteDocumentStore.
func NewSQLiteDocumentStore(db *sql.DB) *SQLiteDocumentStore {
	return &SQLiteDocumentStore{db: db, workspaces: NewSQLiteWorkspaceStore(db)}
}

// CreateTemplate registers a document template. A duplicate reference is a
// conflict.
func (s *SQLiteDocumentStore) CreateTemplate(ctx context.Context, workspaceID string, t plm.DocumentTemplate) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM document_templates WHERE workspace_id = ? AND reference = ?`,
		workspaceID, t.Reference,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check document template: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("document template %q: %w", t.Reference, ErrConflict)
	}

	attrs, err := marshal(t.Attributes)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO document_templates
		 (workspace_id, reference, document_type, mask, id_generation, attributes_locked, attributes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workspaceID, t.Reference, t.DocumentType, t.Mask, t.IDGeneration, t.AttributesLocked, attrs,
	); err != nil {
		return fmt.Errorf("create document template: %w", err)
	}
	return nil
}

// Create inserts a document master at version A, checked out by its creator,
// with one empty iteration. The template, when named, contributes its
// attribute definitions to the first iteration.
func (s *SQLiteDocumentStore) Create(ctx context.Context, workspaceID, folder, login string, doc plm.DocumentCreation) (*plm.DocumentRevision, error) {
	ok, err := s.workspaces.FolderExists(ctx, workspaceID, folder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("folder %q: %w", folder, ErrNotFound)
	}

	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE workspace_id = ? AND id = ?`,
		workspaceID, doc.Reference,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("document %q: %w", doc.Reference, ErrConflict)
	}

	if doc.TemplateID != "" {
		var known int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM document_templates WHERE workspace_id = ? AND reference = ?`,
			workspaceID, doc.TemplateID,
		).Scan(&known); err != nil {
			return nil, fmt.Errorf("check template: %w", err)
		}
		if known == 0 {
			return nil, fmt.Errorf("document template %q: %w", doc.TemplateID, ErrNotFound)
		}
	}

	const version = "A"
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO documents
		 (workspace_id, id, version, title, description, folder, template_id, checked_out, checkout_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)`,
		workspaceID, doc.Reference, version, doc.Title, doc.Description, folder, doc.TemplateID, login, now(),
	); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO document_iterations (workspace_id, document_id, version, iteration)
		 VALUES (?, ?, ?, 1)`,
		workspaceID, doc.Reference, version,
	); err != nil {
		return nil, fmt.Errorf("create first iteration: %w", err)
	}

	return s.GetRevision(ctx, workspaceID, doc.Reference, version)
}

// GetRevision fetches a document revision with all its iterations.
func (s *SQLiteDocumentStore) GetRevision(ctx context.Context, workspaceID, documentID, version string) (*plm.DocumentRevision, error) {
	rev := plm.DocumentRevision{WorkspaceID: workspaceID, DocumentID: documentID, Version: version}
	err := s.db.QueryRowContext(ctx,
		`SELECT title, checked_out, checkout_by FROM documents
		 WHERE workspace_id = ? AND id = ? AND version = ?`,
		workspaceID, documentID, version,
	).Scan(&rev.Title, &rev.CheckedOut, &rev.CheckOutBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s-%s: %w", documentID, version, ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, revision_note, attributes, links FROM document_iterations
		 WHERE workspace_id = ? AND document_id = ? AND version = ? ORDER BY iteration`,
		workspaceID, documentID, version)
	if err != nil {
		return nil, fmt.Errorf("load iterations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		it := plm.DocumentIteration{WorkspaceID: workspaceID, DocumentID: documentID, Version: version}
		var attrs, links string
		if err := rows.Scan(&it.Iteration, &it.RevisionNote, &attrs, &links); err != nil {
			return nil, fmt.Errorf("scan iteration: %w", err)
		}
		if err := unmarshal(attrs, &it.Attributes); err != nil {
			return nil, err
		}
		if err := unmarshal(links, &it.DocumentLinks); err != nil {
			return nil, err
		}
		rev.Iterations = append(rev.Iterations, it)
	}
	return &rev, rows.Err()
}

// UpdateIteration replaces the attributes, links and note of the latest
// iteration. The revision must be checked out by the calling identity.
func (s *SQLiteDocumentStore) UpdateIteration(ctx context.Context, workspaceID, login string, it plm.DocumentIteration) error {
	rev, err := s.GetRevision(ctx, workspaceID, it.DocumentID, it.Version)
	if err != nil {
		return err
	}
	if err := requireCheckedOutBy(rev.CheckedOut, rev.CheckOutBy, login); err != nil {
		return fmt.Errorf("document %s-%s: %w", it.DocumentID, it.Version, err)
	}
	last := rev.LastIteration()
	if last == nil || last.Iteration != it.Iteration {
		return fmt.Errorf("iteration %d is not the latest: %w", it.Iteration, ErrConflict)
	}

	attrs, err := marshal(it.Attributes)
	if err != nil {
		return err
	}
	links, err := marshal(it.DocumentLinks)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE document_iterations SET revision_note = ?, attributes = ?, links = ?
		 WHERE workspace_id = ? AND document_id = ? AND version = ? AND iteration = ?`,
		it.RevisionNote, attrs, links, workspaceID, it.DocumentID, it.Version, it.Iteration,
	); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}
	return nil
}

// CheckIn freezes the latest iteration and releases the revision.
func (s *SQLiteDocumentStore) CheckIn(ctx context.Context, workspaceID, documentID, version, login string) error {
	rev, err := s.GetRevision(ctx, workspaceID, documentID, version)
	if err != nil {
		return err
	}
	if err := requireCheckedOutBy(rev.CheckedOut, rev.CheckOutBy, login); err != nil {
		return fmt.Errorf("document %s-%s: %w", documentID, version, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE documents SET checked_out = FALSE, checkout_by = ''
		 WHERE workspace_id = ? AND id = ? AND version = ?`,
		workspaceID, documentID, version,
	); err != nil {
		return fmt.Errorf("check in document: %w", err)
	}
	return nil
}

// CheckOut reserves the revision for the calling identity and opens a new
// iteration copied from the last one.
func (s *SQLiteDocumentStore) CheckOut(ctx context.Context, workspaceID, documentID, version, login string) error {
	rev, err := s.GetRevision(ctx, workspaceID, documentID, version)
	if err != nil {
		return err
	}
	if rev.CheckedOut {
		return fmt.Errorf("document %s-%s: %w", documentID, version, ErrCheckedOut)
	}
	last := rev.LastIteration()
	if last == nil {
		return fmt.Errorf("document %s-%s has no iteration", documentID, version)
	}

	attrs, err := marshal(last.Attributes)
	if err != nil {
		return err
	}
	links, err := marshal(last.DocumentLinks)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO document_iterations
		 (workspace_id, document_id, version, iteration, revision_note, attributes, links)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workspaceID, documentID, version, last.Iteration+1, last.RevisionNote, attrs, links,
	); err != nil {
		return fmt.Errorf("open next iteration: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE documents SET checked_out = TRUE, checkout_by = ?
		 WHERE workspace_id = ? AND id = ? AND version = ?`,
		login, workspaceID, documentID, version,
	); err != nil {
		return fmt.Errorf("check out document: %w", err)
	}
	return nil
}

// AddFile records an uploaded file on one iteration.
func (s *SQLiteDocumentStore) AddFile(ctx context.Context, workspaceID, documentID, version string, iteration int, name string, size int64) error {
	if _, err := s.GetRevision(ctx, workspaceID, documentID, version); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO document_files
		 (workspace_id, document_id, version, iteration, name, size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		workspaceID, documentID, version, iteration, name, size,
	); err != nil {
		return fmt.Errorf("record file: %w", err)
	}
	return nil
}

// requireCheckedOutBy enforces that a revision is reserved by login.
func requireCheckedOutBy(checkedOut bool, by, login string) error {
	if !checkedOut {
		return ErrNotCheckedOut
	}
	if by != login {
		return fmt.Errorf("checked out by %q: %w", by, ErrConflict)
	}
	return nil
}
