package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateLOV registers a named list of values in the workspace.
func (c *Client) CreateLOV(ctx context.Context, workspaceID string, lov plm.ListOfValues) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/lovs"
	return c.do(ctx, http.MethodPost, path, lov, nil)
}

// GetLOV fetches a list of values by name. Absent LOVs yield a not-found
// APIError.
func (c *Client) GetLOV(ctx context.Context, workspaceID, name string) (*plm.ListOfValues, error) {
	var lov plm.ListOfValues
	path := "/api/workspaces" + pathEscape(workspaceID) + "/lovs" + pathEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &lov); err != nil {
		return nil, fmt.Errorf("get lov %s: %w", name, err)
	}
	return &lov, nil
}
