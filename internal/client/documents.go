package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateDocumentTemplate creates a document master template.
func (c *Client) CreateDocumentTemplate(ctx context.Context, workspaceID string, template plm.DocumentTemplate) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/document-templates"
	return c.do(ctx, http.MethodPost, path, template, nil)
}

// CreateDocument creates a document master in the given folder ("" means the
// workspace root) and returns the new revision with its first iteration.
func (c *Client) CreateDocument(ctx context.Context, workspaceID string, doc plm.DocumentCreation, folder string) (*plm.DocumentRevision, error) {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/documents"
	if folder != "" {
		path += "?folder=" + url.QueryEscape(folder)
	}
	var revision plm.DocumentRevision
	if err := c.do(ctx, http.MethodPost, path, doc, &revision); err != nil {
		return nil, err
	}
	return &revision, nil
}

// UpdateDocumentIteration replaces the attributes, links and note of one
// document iteration.
func (c *Client) UpdateDocumentIteration(ctx context.Context, workspaceID string, iteration plm.DocumentIteration) error {
	path := fmt.Sprintf("/api/workspaces%s/documents%s/%s/%d",
		pathEscape(workspaceID), pathEscape(iteration.DocumentID), iteration.Version, iteration.Iteration)
	return c.do(ctx, http.MethodPut, path, iteration, nil)
}

// CheckInDocument checks in a document revision, freezing its last iteration.
func (c *Client) CheckInDocument(ctx context.Context, workspaceID, documentID, version string) error {
	path := fmt.Sprintf("/api/workspaces%s/documents%s/%s/checkin",
		pathEscape(workspaceID), pathEscape(documentID), version)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// CheckOutDocument checks out a document revision for the calling identity.
func (c *Client) CheckOutDocument(ctx context.Context, workspaceID, documentID, version string) error {
	path := fmt.Sprintf("/api/workspaces%s/documents%s/%s/checkout",
		pathEscape(workspaceID), pathEscape(documentID), version)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// UploadDocumentFile attaches a file to a document iteration.
func (c *Client) UploadDocumentFile(ctx context.Context, workspaceID, documentID, version string, iteration int, fileName string, content io.Reader) error {
	path := fmt.Sprintf("/api/workspaces%s/documents%s/%s/%d/files",
		pathEscape(workspaceID), pathEscape(documentID), version, iteration)
	return c.upload(ctx, path, fileName, content)
}
