package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/openplm/plmseed/internal/plm"
)

// Workspace groups and their members. Later groups are read-only consumers
// of the seeded data.
var demoGroups = map[string][]string{
	"Group1": {"rob", "joe"},
	"Group2": {"steve", "mickey"},
	"Group3": {"bill", "rendal"},
	"Group4": {"winie", "titi"},
	"Group5": {"toto", "tata"},
}

// groupOrder keeps group creation deterministic.
var groupOrder = []string{"Group1", "Group2", "Group3", "Group4", "Group5"}

// readOnlyGroups are granted read-only workspace access.
var readOnlyGroups = map[string]bool{"Group4": true, "Group5": true}

// readOnlyUsers are demoted individually below their group's access.
var readOnlyUsers = []string{"mickey", "rendal"}

var demoFolders = []string{"Letters", "Invoices", "Documentation", "APIManuals"}

var demoTags = []string{"urgent", "important", "draft", "obsolete"}

// createWorkspace creates the demo workspace administered by the caller.
func (l *Loader) createWorkspace(ctx context.Context) error {
	workspace := plm.Workspace{
		ID:          l.opts.WorkspaceID,
		Description: "Demo workspace",
	}
	return l.admin.CreateWorkspace(ctx, workspace, l.admin.Login())
}

// createGroups creates the demo groups and enrolls each member, enabled,
// directly into its group.
func (l *Loader) createGroups(ctx context.Context) error {
	for _, groupID := range groupOrder {
		group := plm.UserGroup{WorkspaceID: l.opts.WorkspaceID, ID: groupID}
		if err := l.admin.CreateGroup(ctx, l.opts.WorkspaceID, group); err != nil {
			return fmt.Errorf("create group %s: %w", groupID, err)
		}
		for _, login := range demoGroups[groupID] {
			user := plm.User{Login: login}
			if err := l.admin.AddUser(ctx, l.opts.WorkspaceID, user, groupID); err != nil {
				return fmt.Errorf("add %s to %s: %w", login, groupID, err)
			}
			if err := l.admin.EnableUser(ctx, l.opts.WorkspaceID, user); err != nil {
				return fmt.Errorf("enable %s: %w", login, err)
			}
		}
	}
	return nil
}

// setAccess grants full access to the working groups, read-only access to the
// consumer groups, then demotes a few members individually.
func (l *Loader) setAccess(ctx context.Context) error {
	for _, groupID := range groupOrder {
		membership := plm.GroupMembership{
			WorkspaceID: l.opts.WorkspaceID,
			MemberID:    groupID,
			ReadOnly:    readOnlyGroups[groupID],
		}
		if err := l.admin.SetGroupAccess(ctx, l.opts.WorkspaceID, membership); err != nil {
			return fmt.Errorf("set access for group %s: %w", groupID, err)
		}
	}
	for _, login := range readOnlyUsers {
		user := plm.User{Login: login, Membership: plm.AccessReadOnly}
		if err := l.admin.SetUserAccess(ctx, l.opts.WorkspaceID, user); err != nil {
			return fmt.Errorf("set access for %s: %w", login, err)
		}
	}
	return nil
}

// createFolders creates the demo folders under the workspace root.
func (l *Loader) createFolders(ctx context.Context) error {
	for _, name := range demoFolders {
		if err := l.admin.CreateFolder(ctx, l.opts.WorkspaceID, plm.Folder{Name: name}); err != nil {
			return fmt.Errorf("create folder %s: %w", name, err)
		}
	}
	return nil
}

// createTags creates the demo tags in one batch.
func (l *Loader) createTags(ctx context.Context) error {
	tags := make([]plm.Tag, 0, len(demoTags))
	for _, id := range demoTags {
		tags = append(tags, plm.Tag{ID: id, Label: id})
	}
	return l.admin.CreateTags(ctx, l.opts.WorkspaceID, tags)
}

// createMilestones creates the 1.0 and 2.0 milestones and restricts the
// second one to the working groups.
func (l *Loader) createMilestones(ctx context.Context) error {
	first := plm.Milestone{
		Title:       "1.0",
		Description: "First release",
		DueDate:     time.Now().AddDate(0, 3, 0).Format("2006-01-02"),
	}
	if err := l.admin.CreateMilestone(ctx, l.opts.WorkspaceID, first); err != nil {
		return fmt.Errorf("create milestone 1.0: %w", err)
	}

	second := plm.Milestone{
		Title:       "2.0",
		Description: "Second release",
		DueDate:     time.Now().AddDate(0, 9, 0).Format("2006-01-02"),
	}
	if err := l.admin.CreateMilestone(ctx, l.opts.WorkspaceID, second); err != nil {
		return fmt.Errorf("create milestone 2.0: %w", err)
	}

	milestones, err := l.admin.Milestones(ctx, l.opts.WorkspaceID)
	if err != nil {
		return err
	}
	acl := GroupACL(map[string]string{
		"Group1": plm.AccessFull,
		"Group2": plm.AccessFull,
		"Group3": plm.AccessFull,
		"Group4": plm.AccessReadOnly,
		"Group5": plm.AccessForbidden,
	})
	for _, m := range milestones {
		if m.Title != "2.0" {
			continue
		}
		if err := l.admin.UpdateMilestoneACL(ctx, l.opts.WorkspaceID, m.ID, acl); err != nil {
			return fmt.Errorf("restrict milestone 2.0: %w", err)
		}
	}
	return nil
}
