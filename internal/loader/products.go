package loader

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
)

// LoadProducts creates the "PART" section of a sample: part templates, then
// parts, then assemblies, then products. Each stage is a best-effort batch.
func LoadProducts(ctx context.Context, c *client.Client, reg *LOVRegistry, workspaceID string, spec *ProductSpec) (*Report, error) {
	rep := &Report{}
	if spec == nil {
		return rep, nil
	}

	for _, tmpl := range spec.Templates {
		if tmpl.ID == "" {
			rep.skip("part template", "", "missing id")
			continue
		}
		template := plm.PartTemplate{
			WorkspaceID:      workspaceID,
			Reference:        tmpl.ID,
			PartType:         tmpl.Type,
			Mask:             tmpl.Mask,
			IDGeneration:     tmpl.IDGeneration,
			AttributesLocked: tmpl.AttributesLocked,
			Attributes:       buildTemplateAttributes(ctx, reg, tmpl.Attributes, rep, tmpl.ID),
		}
		if err := c.CreatePartTemplate(ctx, workspaceID, template); err != nil {
			rep.fail("part template", tmpl.ID, err)
			continue
		}
		rep.created("part template", tmpl.ID)
	}

	for _, part := range spec.Parts {
		if part.Number == "" {
			rep.skip("part", "", "missing partNumber")
			continue
		}
		if err := createPart(ctx, c, reg, workspaceID, part, rep); err != nil {
			rep.fail("part", part.Number, err)
			continue
		}
		rep.created("part", part.Number)
	}

	for _, assembly := range spec.Assemblies {
		if assembly.RootPartNumber == "" {
			rep.skip("assembly", "", "missing partNumber")
			continue
		}
		if err := buildAssembly(ctx, c, workspaceID, assembly, rep); err != nil {
			rep.fail("assembly", assembly.RootPartNumber, err)
			continue
		}
		rep.created("assembly", assembly.RootPartNumber)
	}

	for _, product := range spec.Products {
		if product.Name == "" || product.RootPart == "" {
			rep.skip("product", product.Name, "missing name or rootPart")
			continue
		}
		item := plm.ConfigurationItem{
			WorkspaceID:      workspaceID,
			ID:               product.Name,
			Description:      product.Description,
			DesignItemNumber: product.RootPart,
		}
		if err := c.CreateConfigurationItem(ctx, workspaceID, item); err != nil {
			rep.fail("product", product.Name, err)
			continue
		}
		rep.created("product", product.Name)
	}

	return rep, nil
}

// createPart creates one part, fills its first iteration with attributes and
// document links, and checks it in.
func createPart(ctx context.Context, c *client.Client, reg *LOVRegistry, workspaceID string, part PartItemSpec, rep *Report) error {
	creation := plm.PartCreation{
		WorkspaceID:  workspaceID,
		Number:       part.Number,
		Name:         part.Name,
		Description:  part.Description,
		StandardPart: part.StandardPart,
		TemplateID:   part.Template,
	}
	revision, err := c.CreatePart(ctx, workspaceID, creation)
	if err != nil {
		return err
	}

	iteration := revision.LastIteration()
	if iteration == nil {
		return fmt.Errorf("part %s: created without an iteration", part.Number)
	}
	iteration.Attributes = buildAttributes(ctx, reg, part.Attributes, rep, part.Number)
	for _, link := range part.Links {
		iteration.DocumentLinks = append(iteration.DocumentLinks, plm.DocumentLink{
			DocumentID: link.DocumentID,
			Comment:    link.Comment,
		})
	}
	if err := c.UpdatePartIteration(ctx, workspaceID, *iteration); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}

	if err := c.CheckInPart(ctx, workspaceID, revision.Number, revision.Version); err != nil {
		return fmt.Errorf("check in: %w", err)
	}
	return nil
}

// buildAssembly checks out the root part, replaces its usage links with the
// assembly's components and checks it back in. Component entries whose amount
// does not equal their CAD instance count are rejected; placements must be
// one per unit.
func buildAssembly(ctx context.Context, c *client.Client, workspaceID string, assembly AssemblySpec, rep *Report) error {
	root, err := findLastRevision(ctx, c, workspaceID, assembly.RootPartNumber)
	if err != nil {
		return err
	}

	var links []plm.PartUsageLink
	for _, item := range assembly.Parts {
		link, err := buildUsageLink(item)
		if err != nil {
			rep.fail("usage link", assembly.RootPartNumber+"/"+item.PartNumber, err)
			continue
		}
		links = append(links, *link)
	}

	if err := c.CheckOutPart(ctx, workspaceID, root.Number, root.Version); err != nil {
		return fmt.Errorf("check out %s: %w", root.Number, err)
	}

	checkedOut, err := c.GetPartRevision(ctx, workspaceID, root.Number, root.Version)
	if err != nil {
		return err
	}
	iteration := checkedOut.LastIteration()
	if iteration == nil {
		return fmt.Errorf("part %s: no iteration after check-out", root.Number)
	}
	iteration.Components = links
	if err := c.UpdatePartIteration(ctx, workspaceID, *iteration); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}

	if err := c.CheckInPart(ctx, workspaceID, root.Number, root.Version); err != nil {
		return fmt.Errorf("check in %s: %w", root.Number, err)
	}
	return nil
}

// buildUsageLink converts one assembly entry, enforcing the one-placement-
// per-unit rule for the component and each of its substitutes.
func buildUsageLink(item AssemblyPartSpec) (*plm.PartUsageLink, error) {
	if item.PartNumber == "" {
		return nil, fmt.Errorf("missing partNumber")
	}
	if item.Amount != float64(len(item.CADInstances)) {
		return nil, fmt.Errorf("component %s: amount %v does not match %d cad instances",
			item.PartNumber, item.Amount, len(item.CADInstances))
	}

	link := plm.PartUsageLink{
		Component:    plm.Component{Number: item.PartNumber},
		Amount:       item.Amount,
		Unit:         item.Unit,
		Optional:     item.Optional,
		CADInstances: convertCADInstances(item.CADInstances),
	}
	for _, sub := range item.Substitutes {
		if sub.PartNumber == "" {
			return nil, fmt.Errorf("component %s: substitute without partNumber", item.PartNumber)
		}
		if sub.Amount != float64(len(sub.CADInstances)) {
			return nil, fmt.Errorf("substitute %s: amount %v does not match %d cad instances",
				sub.PartNumber, sub.Amount, len(sub.CADInstances))
		}
		link.Substitutes = append(link.Substitutes, plm.PartSubstituteLink{
			Substitute:   plm.Component{Number: sub.PartNumber},
			Amount:       sub.Amount,
			Unit:         sub.Unit,
			CADInstances: convertCADInstances(sub.CADInstances),
		})
	}
	return &link, nil
}

func convertCADInstances(specs []CADInstanceSpec) []plm.CADInstance {
	instances := make([]plm.CADInstance, 0, len(specs))
	for _, s := range specs {
		instances = append(instances, plm.CADInstance{
			RX: s.RX, RY: s.RY, RZ: s.RZ,
			TX: s.TX, TY: s.TY, TZ: s.TZ,
		})
	}
	return instances
}

// findLastRevision resolves a part number to its newest revision.
func findLastRevision(ctx context.Context, c *client.Client, workspaceID, number string) (*plm.PartRevision, error) {
	masters, err := c.SearchParts(ctx, workspaceID, number, 1)
	if err != nil {
		return nil, err
	}
	for _, master := range masters {
		if master.Number == number && master.LastRevision != nil {
			return master.LastRevision, nil
		}
	}
	return nil, fmt.Errorf("part %s not found", number)
}
