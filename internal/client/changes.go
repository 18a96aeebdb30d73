package client

import (
	"context"
	"net/http"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateChangeRequest creates a change request.
func (c *Client) CreateChangeRequest(ctx context.Context, workspaceID string, request plm.ChangeRequest) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/changes/requests"
	return c.do(ctx, http.MethodPost, path, request, nil)
}

// CreateChangeIssue creates a change issue.
func (c *Client) CreateChangeIssue(ctx context.Context, workspaceID string, issue plm.ChangeIssue) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/changes/issues"
	return c.do(ctx, http.MethodPost, path, issue, nil)
}

// CreateChangeOrder creates a change order.
func (c *Client) CreateChangeOrder(ctx context.Context, workspaceID string, order plm.ChangeOrder) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/changes/orders"
	return c.do(ctx, http.MethodPost, path, order, nil)
}
