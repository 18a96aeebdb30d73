package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateAccount registers a new server account. The server answers 409 when
// the login is taken; use IsConflict to tolerate it.
func (c *Client) CreateAccount(ctx context.Context, account plm.Account) error {
	return c.do(ctx, http.MethodPost, "/api/accounts", account, nil)
}

// CreateWorkspace creates a workspace administered by adminLogin.
func (c *Client) CreateWorkspace(ctx context.Context, workspace plm.Workspace, adminLogin string) error {
	path := "/api/workspaces?userLogin=" + url.QueryEscape(adminLogin)
	return c.do(ctx, http.MethodPost, path, workspace, nil)
}

// DeleteWorkspace removes the workspace and everything inside it.
func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, "/api/workspaces"+pathEscape(workspaceID), nil, nil)
}

// AddUser adds an account to the workspace, optionally directly into a group.
func (c *Client) AddUser(ctx context.Context, workspaceID string, user plm.User, groupID string) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/users"
	if groupID != "" {
		path += "?group=" + url.QueryEscape(groupID)
	}
	return c.do(ctx, http.MethodPost, path, user, nil)
}

// EnableUser activates a workspace member.
func (c *Client) EnableUser(ctx context.Context, workspaceID string, user plm.User) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/users/enable"
	return c.do(ctx, http.MethodPut, path, user, nil)
}

// SetUserAccess sets a member's workspace-level access.
func (c *Client) SetUserAccess(ctx context.Context, workspaceID string, user plm.User) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/users/access"
	return c.do(ctx, http.MethodPut, path, user, nil)
}

// CreateGroup creates an empty user group in the workspace.
func (c *Client) CreateGroup(ctx context.Context, workspaceID string, group plm.UserGroup) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/groups"
	return c.do(ctx, http.MethodPost, path, group, nil)
}

// Groups lists the workspace's user groups.
func (c *Client) Groups(ctx context.Context, workspaceID string) ([]plm.UserGroup, error) {
	var groups []plm.UserGroup
	path := "/api/workspaces" + pathEscape(workspaceID) + "/groups"
	if err := c.do(ctx, http.MethodGet, path, nil, &groups); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// SetGroupAccess sets a group's workspace-level access.
func (c *Client) SetGroupAccess(ctx context.Context, workspaceID string, membership plm.GroupMembership) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/group-access"
	return c.do(ctx, http.MethodPut, path, membership, nil)
}

// CreateFolder creates a folder under the workspace root.
func (c *Client) CreateFolder(ctx context.Context, workspaceID string, folder plm.Folder) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/folders"
	return c.do(ctx, http.MethodPost, path, folder, nil)
}

type tagList struct {
	Tags []plm.Tag `json:"tags"`
}

// CreateTags creates workspace tags in one batch.
func (c *Client) CreateTags(ctx context.Context, workspaceID string, tags []plm.Tag) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/tags"
	return c.do(ctx, http.MethodPost, path, tagList{Tags: tags}, nil)
}

// CreateMilestone creates a workspace milestone.
func (c *Client) CreateMilestone(ctx context.Context, workspaceID string, milestone plm.Milestone) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/milestones"
	return c.do(ctx, http.MethodPost, path, milestone, nil)
}

// Milestones lists the workspace's milestones.
func (c *Client) Milestones(ctx context.Context, workspaceID string) ([]plm.Milestone, error) {
	var milestones []plm.Milestone
	path := "/api/workspaces" + pathEscape(workspaceID) + "/milestones"
	if err := c.do(ctx, http.MethodGet, path, nil, &milestones); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}

// UpdateMilestoneACL replaces a milestone's access control list.
func (c *Client) UpdateMilestoneACL(ctx context.Context, workspaceID string, milestoneID int, acl plm.ACL) error {
	path := fmt.Sprintf("/api/workspaces%s/milestones/%d/acl", pathEscape(workspaceID), milestoneID)
	return c.do(ctx, http.MethodPut, path, acl, nil)
}
