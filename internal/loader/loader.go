package loader

import (
	"context"
	"log/slog"

	"github.com/openplm/plmseed/internal/client"
)

// Load runs a full sample load against one workspace: lists of values, then
// documents, then products. The returned report aggregates all three stages.
// An error means a stage could not run at all; per-item outcomes are in the
// report.
func Load(ctx context.Context, c *client.Client, workspaceID string, spec *SampleSpec) (*Report, error) {
	rep := &Report{}
	reg := NewLOVRegistry(c, workspaceID)

	reg.RegisterAll(ctx, spec.LOVs, rep)

	docRep, err := LoadDocuments(ctx, c, reg, workspaceID, spec.Documents)
	if err != nil {
		return rep, err
	}
	rep.Merge(docRep)

	partRep, err := LoadProducts(ctx, c, reg, workspaceID, spec.Products)
	if err != nil {
		return rep, err
	}
	rep.Merge(partRep)

	slog.Info("sample load finished",
		"workspace", workspaceID,
		"created", len(rep.Created),
		"skipped", len(rep.Skipped),
		"failed", len(rep.Failed))
	return rep, nil
}

// LoadFile parses a sample file and loads it.
func LoadFile(ctx context.Context, c *client.Client, workspaceID, path string) (*Report, error) {
	spec, err := ParseSampleFile(path)
	if err != nil {
		return nil, err
	}
	return Load(ctx, c, workspaceID, spec)
}
