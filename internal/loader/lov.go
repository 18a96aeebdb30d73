package loader

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
)

// LOVRegistry creates lists of values in a workspace and resolves them by
// name for attribute binding. Lookups hit the server once per name and are
// cached for the registry's lifetime.
type LOVRegistry struct {
	client      *client.Client
	workspaceID string
	cache       map[string]*plm.ListOfValues
}

// NewLOVRegistry returns a registry scoped to one workspace.
func NewLOVRegistry(c *client.Client, workspaceID string) *LOVRegistry {
	return &LOVRegistry{
		client:      c,
		workspaceID: workspaceID,
		cache:       make(map[string]*plm.ListOfValues),
	}
}

// RegisterAll creates every list of values from the sample. Lists without a
// name are skipped; a list that already exists counts as a failure so a rerun
// surfaces in the report.
func (r *LOVRegistry) RegisterAll(ctx context.Context, specs []LOVSpec, rep *Report) {
	for _, spec := range specs {
		if spec.Name == "" {
			rep.skip("lov", "", "missing lovName")
			continue
		}
		if err := r.Register(ctx, spec); err != nil {
			rep.fail("lov", spec.Name, err)
			continue
		}
		rep.created("lov", spec.Name)
	}
}

// Register creates one list of values and caches it.
func (r *LOVRegistry) Register(ctx context.Context, spec LOVSpec) error {
	lov := plm.ListOfValues{
		WorkspaceID: r.workspaceID,
		Name:        spec.Name,
	}
	for _, v := range spec.Values {
		lov.Values = append(lov.Values, plm.NameValuePair{Name: v.Name, Value: v.Value})
	}
	if err := r.client.CreateLOV(ctx, r.workspaceID, lov); err != nil {
		return fmt.Errorf("create lov %s: %w", spec.Name, err)
	}
	r.cache[spec.Name] = &lov
	return nil
}

// Lookup resolves a list of values by name. Unknown names yield (nil, nil) so
// the caller can skip the referencing attribute rather than abort the batch.
func (r *LOVRegistry) Lookup(ctx context.Context, name string) (*plm.ListOfValues, error) {
	if lov, ok := r.cache[name]; ok {
		return lov, nil
	}
	lov, err := r.client.GetLOV(ctx, r.workspaceID, name)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	r.cache[name] = lov
	return lov, nil
}
