package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openplm/plmseed/internal/plm"
)

// CreateConfigurationItem creates a product bound to its root part number.
func (c *Client) CreateConfigurationItem(ctx context.Context, workspaceID string, item plm.ConfigurationItem) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products"
	return c.do(ctx, http.MethodPost, path, item, nil)
}

// ProductStructure returns the product's structure filtered to its current
// work-in-progress iterations.
func (c *Client) ProductStructure(ctx context.Context, workspaceID, productID string) (*plm.StructureNode, error) {
	var root plm.StructureNode
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products" + pathEscape(productID) + "/structure"
	if err := c.do(ctx, http.MethodGet, path, nil, &root); err != nil {
		return nil, fmt.Errorf("product structure %s: %w", productID, err)
	}
	return &root, nil
}

// CreatePathToPathLink adds a typed link between two structure paths.
func (c *Client) CreatePathToPathLink(ctx context.Context, workspaceID, productID string, link plm.PathToPathLink) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products" + pathEscape(productID) + "/path-to-path-links"
	return c.do(ctx, http.MethodPost, path, link, nil)
}

// CreateBaseline snapshots the product structure.
func (c *Client) CreateBaseline(ctx context.Context, workspaceID string, baseline plm.Baseline) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products" + pathEscape(baseline.ConfigurationItemID) + "/baselines"
	return c.do(ctx, http.MethodPost, path, baseline, nil)
}

// Baselines lists the baselines of one product.
func (c *Client) Baselines(ctx context.Context, workspaceID, productID string) ([]plm.Baseline, error) {
	var baselines []plm.Baseline
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products" + pathEscape(productID) + "/baselines"
	if err := c.do(ctx, http.MethodGet, path, nil, &baselines); err != nil {
		return nil, fmt.Errorf("list baselines %s: %w", productID, err)
	}
	return baselines, nil
}

// CreateProductInstance creates a serial-numbered instance of a baseline.
func (c *Client) CreateProductInstance(ctx context.Context, workspaceID string, instance plm.ProductInstance) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/products" + pathEscape(instance.ConfigurationItemID) + "/product-instances"
	return c.do(ctx, http.MethodPost, path, instance, nil)
}

// CreateProductConfiguration narrows a product to a set of optional links.
func (c *Client) CreateProductConfiguration(ctx context.Context, workspaceID string, cfg plm.ProductConfiguration) error {
	path := "/api/workspaces" + pathEscape(workspaceID) + "/product-configurations"
	return c.do(ctx, http.MethodPost, path, cfg, nil)
}
