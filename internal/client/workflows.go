package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateRole creates a workflow role and returns it as stored server-side.
func (c *Client) CreateRole(ctx context.Context, workspaceID string, role plm.Role) (*plm.Role, error) {
	var created plm.Role
	path := "/api/workspaces" + pathEscape(workspaceID) + "/roles"
	if err := c.do(ctx, http.MethodPost, path, role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateWorkflowModel creates a workflow template.
func (c *Client) CreateWorkflowModel(ctx context.Context, workspaceID string, model plm.WorkflowModel) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/workflows"
	return c.do(ctx, http.MethodPost, path, model, nil)
}

// WorkflowModels lists the workspace's workflow templates.
func (c *Client) WorkflowModels(ctx context.Context, workspaceID string) ([]plm.WorkflowModel, error) {
	var models []plm.WorkflowModel
	path := "/api/workspaces" + pathEscape(workspaceID) + "/workflows"
	if err := c.do(ctx, http.MethodGet, path, nil, &models); err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	return models, nil
}

// GetWorkflowModel fetches one workflow template by id.
func (c *Client) GetWorkflowModel(ctx context.Context, workspaceID, id string) (*plm.WorkflowModel, error) {
	var model plm.WorkflowModel
	path := "/api/workspaces" + pathEscape(workspaceID) + "/workflows" + pathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &model); err != nil {
		return nil, fmt.Errorf("get workflow %s: %w", id, err)
	}
	return &model, nil
}

// UpdateWorkflowACL replaces a workflow template's access control list.
func (c *Client) UpdateWorkflowACL(ctx context.Context, workspaceID, id string, acl plm.ACL) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/workflows" + pathEscape(id) + "/acl"
	return c.do(ctx, http.MethodPut, path, acl, nil)
}
