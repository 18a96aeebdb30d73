package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openplm/plmseed/internal/plm"
)

// Part file kinds accepted by UploadPartFile.
const (
	PartFileNativeCAD = "nativecad"
	PartFileAttached  = "attached"
)

// CreatePartTemplate creates a part master template.
func (c *Client) CreatePartTemplate(ctx context.Context, workspaceID string, template plm.PartTemplate) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/part-templates"
	return c.do(ctx, http.MethodPost, path, template, nil)
}

// CreatePart creates a part master and returns the new revision with its
// first iteration. Duplicate part numbers are a server conflict.
func (c *Client) CreatePart(ctx context.Context, workspaceID string, part plm.PartCreation) (*plm.PartRevision, error) {
	var revision plm.PartRevision
	path := "/api/workspaces" + pathEscape(workspaceID) + "/parts"
	if err := c.do(ctx, http.MethodPost, path, part, &revision); err != nil {
		return nil, err
	}
	return &revision, nil
}

// SearchParts looks up part masters by number, returning at most limit
// results.
func (c *Client) SearchParts(ctx context.Context, workspaceID, number string, limit int) ([]plm.PartMaster, error) {
	var masters []plm.PartMaster
	path := "/api/workspaces" + pathEscape(workspaceID) + "/parts/search?number=" +
		url.QueryEscape(number) + "&limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &masters); err != nil {
		return nil, fmt.Errorf("search parts %s: %w", number, err)
	}
	return masters, nil
}

// GetPartRevision fetches one part revision with all its iterations.
func (c *Client) GetPartRevision(ctx context.Context, workspaceID, number, version string) (*plm.PartRevision, error) {
	var revision plm.PartRevision
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s", pathEscape(workspaceID), pathEscape(number), version)
	if err := c.do(ctx, http.MethodGet, path, nil, &revision); err != nil {
		return nil, fmt.Errorf("get part %s-%s: %w", number, version, err)
	}
	return &revision, nil
}

// UpdatePartIteration replaces the attributes, components and links of one
// part iteration.
func (c *Client) UpdatePartIteration(ctx context.Context, workspaceID string, iteration plm.PartIteration) error {
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s/%d",
		pathEscape(workspaceID), pathEscape(iteration.Number), iteration.Version, iteration.Iteration)
	return c.do(ctx, http.MethodPut, path, iteration, nil)
}

// CheckInPart checks in a part revision.
func (c *Client) CheckInPart(ctx context.Context, workspaceID, number, version string) error {
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s/checkin", pathEscape(workspaceID), pathEscape(number), version)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// CheckOutPart checks out a part revision for the calling identity.
func (c *Client) CheckOutPart(ctx context.Context, workspaceID, number, version string) error {
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s/checkout", pathEscape(workspaceID), pathEscape(number), version)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// UploadPartFile attaches a file to a part iteration. kind is
// PartFileNativeCAD or PartFileAttached; native CAD uploads start a
// server-side conversion observable through ConversionStatus.
func (c *Client) UploadPartFile(ctx context.Context, workspaceID, number, version string, iteration int, kind, fileName string, content io.Reader) error {
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s/%d/files?type=%s",
		pathEscape(workspaceID), pathEscape(number), version, iteration, url.QueryEscape(kind))
	return c.upload(ctx, path, fileName, content)
}

// ConversionStatus reports the conversion state of a part iteration's native
// CAD file.
func (c *Client) ConversionStatus(ctx context.Context, workspaceID, number, version string, iteration int) (*plm.ConversionStatus, error) {
	var status plm.ConversionStatus
	path := fmt.Sprintf("/api/workspaces%s/parts%s/%s/%d/conversion",
		pathEscape(workspaceID), pathEscape(number), version, iteration)
	if err := c.do(ctx, http.MethodGet, path, nil, &status); err != nil {
		return nil, fmt.Errorf("conversion status %s-%s: %w", number, version, err)
	}
	return &status, nil
}
