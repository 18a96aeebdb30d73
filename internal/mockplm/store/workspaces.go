package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// WorkspaceStore defines operations for workspaces and their membership,
// folders, tags and milestones.
type WorkspaceStore interface {
	Create(ctx context.Context, workspace plm.Workspace, adminLogin string) error
	Exists(ctx context.Context, workspaceID string) error
	Delete(ctx context.Context, workspaceID string) error
	AddUser(ctx context.Context, workspaceID string, user plm.User, groupID string) error
	EnableUser(ctx context.Context, workspaceID, login string) error
	SetUserAccess(ctx context.Context, workspaceID string, user plm.User) error
	CreateGroup(ctx context.Context, workspaceID string, group plm.UserGroup) error
	Groups(ctx context.Context, workspaceID string) ([]plm.UserGroup, error)
	SetGroupAccess(ctx context.Context, membership plm.GroupMembership) error
	CreateFolder(ctx context.Context, workspaceID, name string) error
	FolderExists(ctx context.Context, workspaceID, name string) (bool, error)
	CreateTags(ctx context.Context, workspaceID string, tags []plm.Tag) error
	CreateMilestone(ctx context.Context, workspaceID string, m plm.Milestone) (*plm.Milestone, error)
	Milestones(ctx context.Context, workspaceID string) ([]plm.Milestone, error)
	UpdateMilestoneACL(ctx context.Context, workspaceID string, milestoneID int, acl plm.ACL) error
}

// SQLiteWorkspaceStore implements WorkspaceStore backed by SQLite.
type SQLiteWorkspaceStore struct {
	db *sql.DB
}

// NewSQLiteWorkspaceStore creates a new SQLiteWorkspaceStore.
func NewSQLiteWorkspaceStore(db *sql.DB) *SQLiteWorkspaceStore {
	return &SQLiteWorkspaceStore{db: db}
}

// Create inserts a workspace and enrolls its administrator as an enabled
// full-access member.
func (s *SQLiteWorkspaceStore) Create(ctx context.Context, workspace plm.Workspace, adminLogin string) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workspaces WHERE id = ?`, workspace.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check workspace: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("workspace %q: %w", workspace.ID, ErrConflict)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO workspaces (id, description, admin_login, created_at) VALUES (?, ?, ?, ?)`,
		workspace.ID, workspace.Description, adminLogin, now(),
	); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO workspace_users (workspace_id, login, membership, enabled) VALUES (?, ?, ?, TRUE)`,
		workspace.ID, adminLogin, plm.AccessFull,
	); err != nil {
		return fmt.Errorf("enroll workspace admin: %w", err)
	}
	return nil
}

// Exists reports whether the workspace is known.
func (s *SQLiteWorkspaceStore) Exists(ctx context.Context, workspaceID string) error {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workspaces WHERE id = ?`, workspaceID,
	).Scan(&count); err != nil {
		return fmt.Errorf("check workspace: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("workspace %q: %w", workspaceID, ErrNotFound)
	}
	return nil
}

// Delete removes the workspace and everything scoped to it.
func (s *SQLiteWorkspaceStore) Delete(ctx context.Context, workspaceID string) error {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return err
	}

	tables := []string{
		"workspace_users", "user_groups", "group_members", "folders", "tags",
		"milestones", "lovs", "document_templates", "documents",
		"document_iterations", "document_files", "part_templates", "parts",
		"part_iterations", "part_files", "conversions", "products",
		"path_to_path_links", "baselines", "product_instances",
		"product_configurations", "roles", "workflows", "change_items",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE workspace_id = ?", workspaceID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM workspaces WHERE id = ?`, workspaceID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}

// AddUser enrolls an account into the workspace, optionally directly into a
// group. New members start disabled.
func (s *SQLiteWorkspaceStore) AddUser(ctx context.Context, workspaceID string, user plm.User, groupID string) error {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return err
	}

	var known int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE login = ?`, user.Login,
	).Scan(&known); err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if known == 0 {
		return fmt.Errorf("account %q: %w", user.Login, ErrNotFound)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO workspace_users (workspace_id, login, membership, enabled)
		 VALUES (?, ?, ?, FALSE)`,
		workspaceID, user.Login, plm.AccessFull,
	); err != nil {
		return fmt.Errorf("add user: %w", err)
	}

	if groupID != "" {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO group_members (workspace_id, group_id, login) VALUES (?, ?, ?)`,
			workspaceID, groupID, user.Login,
		); err != nil {
			return fmt.Errorf("add user to group: %w", err)
		}
	}
	return nil
}

// EnableUser activates a workspace member.
func (s *SQLiteWorkspaceStore) EnableUser(ctx context.Context, workspaceID, login string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE workspace_users SET enabled = TRUE WHERE workspace_id = ? AND login = ?`,
		workspaceID, login,
	)
	if err != nil {
		return fmt.Errorf("enable user: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("user %q: %w", login, ErrNotFound)
	}
	return nil
}

// SetUserAccess updates a member's workspace-level access.
func (s *SQLiteWorkspaceStore) SetUserAccess(ctx context.Context, workspaceID string, user plm.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE workspace_users SET membership = ? WHERE workspace_id = ? AND login = ?`,
		user.Membership, workspaceID, user.Login,
	)
	if err != nil {
		return fmt.Errorf("set user access: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("user %q: %w", user.Login, ErrNotFound)
	}
	return nil
}

// CreateGroup adds an empty user group.
func (s *SQLiteWorkspaceStore) CreateGroup(ctx context.Context, workspaceID string, group plm.UserGroup) error {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return err
	}
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_groups WHERE workspace_id = ? AND id = ?`,
		workspaceID, group.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check group: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("group %q: %w", group.ID, ErrConflict)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO user_groups (workspace_id, id) VALUES (?, ?)`,
		workspaceID, group.ID,
	); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Groups lists the workspace's groups with their members.
func (s *SQLiteWorkspaceStore) Groups(ctx context.Context, workspaceID string) ([]plm.UserGroup, error) {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM user_groups WHERE workspace_id = ? ORDER BY id`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var groups []plm.UserGroup
	for rows.Next() {
		var g plm.UserGroup
		if err := rows.Scan(&g.ID); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		g.WorkspaceID = workspaceID
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// Load members in a separate pass (SQLite MaxOpenConns=1).
	for i := range groups {
		members, err := s.groupMembers(ctx, workspaceID, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Users = members
	}
	if groups == nil {
		groups = []plm.UserGroup{}
	}
	return groups, nil
}

// SetGroupAccess records a group's workspace-level access.
func (s *SQLiteWorkspaceStore) SetGroupAccess(ctx context.Context, membership plm.GroupMembership) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE user_groups SET read_only = ? WHERE workspace_id = ? AND id = ?`,
		membership.ReadOnly, membership.WorkspaceID, membership.MemberID,
	)
	if err != nil {
		return fmt.Errorf("set group access: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("group %q: %w", membership.MemberID, ErrNotFound)
	}
	return nil
}

// CreateFolder adds a folder under the workspace root.
func (s *SQLiteWorkspaceStore) CreateFolder(ctx context.Context, workspaceID, name string) error {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return err
	}
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM folders WHERE workspace_id = ? AND name = ?`,
		workspaceID, name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check folder: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("folder %q: %w", name, ErrConflict)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (workspace_id, name) VALUES (?, ?)`,
		workspaceID, name,
	); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// FolderExists reports whether the folder is known, "" meaning the root.
func (s *SQLiteWorkspaceStore) FolderExists(ctx context.Context, workspaceID, name string) (bool, error) {
	if name == "" {
		return true, nil
	}
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM folders WHERE workspace_id = ? AND name = ?`,
		workspaceID, name,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("check folder: %w", err)
	}
	return count > 0, nil
}

// CreateTags adds workspace tags in one batch, ignoring duplicates.
func (s *SQLiteWorkspaceStore) CreateTags(ctx context.Context, workspaceID string, tags []plm.Tag) error {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return err
	}
	for _, tag := range tags {
		label := tag.Label
		if label == "" {
			label = tag.ID
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (workspace_id, id, label) VALUES (?, ?, ?)`,
			workspaceID, tag.ID, label,
		); err != nil {
			return fmt.Errorf("create tag %q: %w", tag.ID, err)
		}
	}
	return nil
}

// CreateMilestone inserts a milestone and returns it with its generated id.
func (s *SQLiteWorkspaceStore) CreateMilestone(ctx context.Context, workspaceID string, m plm.Milestone) (*plm.Milestone, error) {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO milestones (workspace_id, title, description, due_date) VALUES (?, ?, ?, ?)`,
		workspaceID, m.Title, m.Description, m.DueDate,
	)
	if err != nil {
		return nil, fmt.Errorf("create milestone: %w", err)
	}
	id, _ := result.LastInsertId()
	m.ID = int(id)
	m.WorkspaceID = workspaceID
	return &m, nil
}

// Milestones lists the workspace's milestones.
func (s *SQLiteWorkspaceStore) Milestones(ctx context.Context, workspaceID string) ([]plm.Milestone, error) {
	if err := s.Exists(ctx, workspaceID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, due_date FROM milestones WHERE workspace_id = ? ORDER BY id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	milestones := []plm.Milestone{}
	for rows.Next() {
		var m plm.Milestone
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DueDate); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		m.WorkspaceID = workspaceID
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// UpdateMilestoneACL replaces a milestone's access control list.
func (s *SQLiteWorkspaceStore) UpdateMilestoneACL(ctx context.Context, workspaceID string, milestoneID int, acl plm.ACL) error {
	payload, err := marshal(acl)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE milestones SET acl = ? WHERE workspace_id = ? AND id = ?`,
		payload, workspaceID, milestoneID,
	)
	if err != nil {
		return fmt.Errorf("update milestone acl: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("milestone %d: %w", milestoneID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteWorkspaceStore) groupMembers(ctx context.Context, workspaceID, groupID string) ([]plm.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gm.login, wu.membership, wu.enabled
		 FROM group_members gm
		 JOIN workspace_users wu ON wu.workspace_id = gm.workspace_id AND wu.login = gm.login
		 WHERE gm.workspace_id = ? AND gm.group_id = ? ORDER BY gm.login`,
		workspaceID, groupID)
	if err != nil {
		return nil, fmt.Errorf("load group members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []plm.User
	for rows.Next() {
		var u plm.User
		if err := rows.Scan(&u.Login, &u.Membership, &u.Enabled); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		u.WorkspaceID = workspaceID
		members = append(members, u)
	}
	return members, rows.Err()
}
