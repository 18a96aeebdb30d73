package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
)

// Demo part templates.
var demoPartTemplates = []plm.PartTemplate{
	{
		Reference:    "Mechanical",
		PartType:     "mechanical",
		Mask:         "PART-###",
		IDGeneration: true,
		Attributes: []plm.AttributeTemplate{
			{Name: "weight", Type: plm.AttributeNumber},
			{Name: "material", Type: plm.AttributeText},
		},
	},
	{
		Reference: "Electrical",
		PartType:  "electrical",
		Attributes: []plm.AttributeTemplate{
			{Name: "voltage", Type: plm.AttributeNumber},
		},
	},
}

// demoPart describes one leaf part: created, filled, its CAD file converted,
// then checked in.
type demoPart struct {
	number     string
	name       string
	template   string
	file       string
	attributes []plm.Attribute
}

var carParts = []demoPart{
	{
		number:   "SEAT-010",
		name:     "Front seat",
		template: "Mechanical",
		file:     "seat.obj",
		attributes: []plm.Attribute{
			{Name: "weight", Type: plm.AttributeNumber, Value: "12.5"},
			{Name: "material", Type: plm.AttributeText, Value: "fabric"},
		},
	},
	{
		number:   "SEAT-020",
		name:     "Rear bench",
		template: "Mechanical",
		file:     "seat-rear.obj",
		attributes: []plm.Attribute{
			{Name: "weight", Type: plm.AttributeNumber, Value: "21"},
			{Name: "material", Type: plm.AttributeText, Value: "leather"},
		},
	},
	{
		number:   "ENGINE-050",
		name:     "Small engine",
		template: "Mechanical",
		file:     "engine-small.obj",
		attributes: []plm.Attribute{
			{Name: "weight", Type: plm.AttributeNumber, Value: "95"},
			{Name: "material", Type: plm.AttributeText, Value: "aluminium"},
		},
	},
	{
		number:   "ENGINE-100",
		name:     "Large engine",
		template: "Mechanical",
		file:     "engine-large.obj",
		attributes: []plm.Attribute{
			{Name: "weight", Type: plm.AttributeNumber, Value: "130"},
			{Name: "material", Type: plm.AttributeText, Value: "aluminium"},
		},
	},
}

var doorParts = []demoPart{
	{number: "WINDOW-010", name: "Door window", template: "Mechanical", file: "window.obj"},
	{number: "LOCK-010", name: "Door lock", template: "Mechanical", file: "lock.obj"},
}

// createPartTemplates registers the demo part templates.
func (l *Loader) createPartTemplates(ctx context.Context) error {
	for _, template := range demoPartTemplates {
		if err := l.admin.CreatePartTemplate(ctx, l.opts.WorkspaceID, template); err != nil {
			return fmt.Errorf("create template %s: %w", template.Reference, err)
		}
	}
	return nil
}

// createCarProduct seeds the car: leaf parts with converted CAD files, the
// CAR-001 assembly with seat and engine usage links, the CityCar product, a
// baseline, one serial instance and a named configuration.
func (l *Loader) createCarProduct(ctx context.Context) error {
	for _, part := range carParts {
		if err := l.createPart(ctx, part); err != nil {
			return fmt.Errorf("part %s: %w", part.number, err)
		}
	}

	seats := plm.PartUsageLink{
		Component: plm.Component{Number: "SEAT-010"},
		Amount:    2,
		CADInstances: []plm.CADInstance{
			{TX: -0.4, TZ: 0.3},
			{TX: 0.4, TZ: 0.3},
		},
		Substitutes: []plm.PartSubstituteLink{
			{
				Substitute:   plm.Component{Number: "SEAT-020"},
				Amount:       2,
				CADInstances: []plm.CADInstance{{TX: -0.4, TZ: 0.3}, {TX: 0.4, TZ: 0.3}},
			},
		},
	}
	engine := plm.PartUsageLink{
		Component:    plm.Component{Number: "ENGINE-050"},
		Amount:       1,
		CADInstances: []plm.CADInstance{{TZ: 1.6}},
		Substitutes: []plm.PartSubstituteLink{
			{
				Substitute:   plm.Component{Number: "ENGINE-100"},
				Amount:       1,
				CADInstances: []plm.CADInstance{{TZ: 1.6}},
			},
		},
	}

	car := demoPart{number: "CAR-001", name: "City car", template: "Mechanical", file: "car.obj"}
	if err := l.createAssembly(ctx, car, "My first workflow", []plm.PartUsageLink{seats, engine}); err != nil {
		return fmt.Errorf("assembly CAR-001: %w", err)
	}

	item := plm.ConfigurationItem{
		ID:               "CityCar",
		DesignItemNumber: "CAR-001",
		Description:      "Compact city car",
	}
	if err := l.admin.CreateConfigurationItem(ctx, l.opts.WorkspaceID, item); err != nil {
		return fmt.Errorf("create product CityCar: %w", err)
	}

	baselineID, err := l.createBaseline(ctx, "CityCar", "CityCar-1.0")
	if err != nil {
		return err
	}
	instance := plm.ProductInstance{
		ConfigurationItemID: "CityCar",
		SerialNumber:        "CITYCAR-0001",
		BaselineID:          baselineID,
	}
	if err := l.admin.CreateProductInstance(ctx, l.opts.WorkspaceID, instance); err != nil {
		return fmt.Errorf("create instance CITYCAR-0001: %w", err)
	}

	cfg := plm.ProductConfiguration{
		Name:                "CityCar-base",
		ConfigurationItemID: "CityCar",
		Description:         "Base trim without options",
	}
	if err := l.admin.CreateProductConfiguration(ctx, l.opts.WorkspaceID, cfg); err != nil {
		return fmt.Errorf("create configuration CityCar-base: %w", err)
	}
	return nil
}

// createDoorProduct seeds the door: window and lock parts, the DOOR-010
// assembly, the Door product, a path-to-path link between the window and the
// lock, and a baseline.
func (l *Loader) createDoorProduct(ctx context.Context) error {
	for _, part := range doorParts {
		if err := l.createPart(ctx, part); err != nil {
			return fmt.Errorf("part %s: %w", part.number, err)
		}
	}

	links := []plm.PartUsageLink{
		{
			Component:    plm.Component{Number: "WINDOW-010"},
			Amount:       1,
			CADInstances: []plm.CADInstance{{TY: 0.5}},
		},
		{
			Component:    plm.Component{Number: "LOCK-010"},
			Amount:       1,
			Optional:     true,
			CADInstances: []plm.CADInstance{{TY: 0.2, TX: 0.45}},
		},
	}
	door := demoPart{number: "DOOR-010", name: "Front door", template: "Mechanical", file: "door.obj"}
	if err := l.createAssembly(ctx, door, "Workflow-door-creation", links); err != nil {
		return fmt.Errorf("assembly DOOR-010: %w", err)
	}

	item := plm.ConfigurationItem{
		ID:               "Door",
		DesignItemNumber: "DOOR-010",
		Description:      "Front door subassembly",
	}
	if err := l.admin.CreateConfigurationItem(ctx, l.opts.WorkspaceID, item); err != nil {
		return fmt.Errorf("create product Door: %w", err)
	}

	structure, err := l.admin.ProductStructure(ctx, l.opts.WorkspaceID, "Door")
	if err != nil {
		return err
	}
	var windowPath, lockPath string
	for _, node := range structure.Components {
		switch node.Number {
		case "WINDOW-010":
			windowPath = node.Path
		case "LOCK-010":
			lockPath = node.Path
		}
	}
	if windowPath == "" || lockPath == "" {
		return fmt.Errorf("door structure is missing its components")
	}
	link := plm.PathToPathLink{
		Type:        "mechanical",
		Description: "lock actuates window",
		SourcePath:  lockPath,
		TargetPath:  windowPath,
	}
	if err := l.admin.CreatePathToPathLink(ctx, l.opts.WorkspaceID, "Door", link); err != nil {
		return fmt.Errorf("create path link: %w", err)
	}

	_, err = l.createBaseline(ctx, "Door", "Door-1.0")
	return err
}

// createPart creates one leaf part, fills its attributes, uploads and
// converts its CAD file, then checks it in.
func (l *Loader) createPart(ctx context.Context, part demoPart) error {
	creation := plm.PartCreation{
		Number:     part.number,
		Name:       part.name,
		TemplateID: part.template,
	}
	revision, err := l.admin.CreatePart(ctx, l.opts.WorkspaceID, creation)
	if err != nil {
		return err
	}

	iteration := revision.LastIteration()
	if iteration == nil {
		return fmt.Errorf("created without an iteration")
	}
	if len(part.attributes) > 0 {
		iteration.Attributes = part.attributes
		if err := l.admin.UpdatePartIteration(ctx, l.opts.WorkspaceID, *iteration); err != nil {
			return fmt.Errorf("update iteration: %w", err)
		}
	}

	if err := l.uploadCAD(ctx, revision, part.file); err != nil {
		return err
	}
	return l.admin.CheckInPart(ctx, l.opts.WorkspaceID, revision.Number, revision.Version)
}

// createAssembly creates an assembly part bound to a workflow with its role
// mapping and the content ACL, sets its usage links, uploads its CAD file and
// checks it in.
func (l *Loader) createAssembly(ctx context.Context, part demoPart, workflowID string, links []plm.PartUsageLink) error {
	creation := plm.PartCreation{
		Number:          part.number,
		Name:            part.name,
		TemplateID:      part.template,
		WorkflowModelID: workflowID,
		RoleMapping:     RoleMappingFor(demoWorkflow(workflowID), demoRoles),
		ACL:             contentACL(),
	}
	revision, err := l.admin.CreatePart(ctx, l.opts.WorkspaceID, creation)
	if err != nil {
		return err
	}

	iteration := revision.LastIteration()
	if iteration == nil {
		return fmt.Errorf("created without an iteration")
	}
	iteration.Components = links
	if err := l.admin.UpdatePartIteration(ctx, l.opts.WorkspaceID, *iteration); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}

	if err := l.uploadCAD(ctx, revision, part.file); err != nil {
		return err
	}
	return l.admin.CheckInPart(ctx, l.opts.WorkspaceID, revision.Number, revision.Version)
}

// uploadCAD uploads a native CAD file to the revision's last iteration and
// waits for the server-side conversion to finish.
func (l *Loader) uploadCAD(ctx context.Context, revision *plm.PartRevision, file string) error {
	if file == "" {
		return nil
	}
	iteration := revision.LastIteration()
	content, err := asset(file)
	if err != nil {
		return err
	}
	err = l.admin.UploadPartFile(ctx, l.opts.WorkspaceID,
		revision.Number, revision.Version, iteration.Iteration, client.PartFileNativeCAD, file, content)
	if err != nil {
		return fmt.Errorf("upload %s: %w", file, err)
	}
	return l.waitForConversion(ctx, revision.Number, revision.Version, iteration.Iteration)
}

// waitForConversion polls the conversion status until it is done, failed, or
// the timeout elapses.
func (l *Loader) waitForConversion(ctx context.Context, number, version string, iteration int) error {
	deadline := time.Now().Add(l.opts.PollTimeout)
	ticker := time.NewTicker(l.opts.PollInterval)
	defer ticker.Stop()

	for {
		status, err := l.admin.ConversionStatus(ctx, l.opts.WorkspaceID, number, version, iteration)
		if err != nil {
			return err
		}
		switch status.Status {
		case plm.ConversionDone:
			return nil
		case plm.ConversionFailed:
			return fmt.Errorf("conversion failed for %s-%s", number, version)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("conversion timed out for %s-%s after %s", number, version, l.opts.PollTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// createBaseline snapshots a product and returns the generated baseline id.
func (l *Loader) createBaseline(ctx context.Context, productID, name string) (int, error) {
	baseline := plm.Baseline{
		ConfigurationItemID: productID,
		Name:                name,
		Type:                plm.BaselineLatest,
	}
	if err := l.admin.CreateBaseline(ctx, l.opts.WorkspaceID, baseline); err != nil {
		return 0, fmt.Errorf("create baseline %s: %w", name, err)
	}
	baselines, err := l.admin.Baselines(ctx, l.opts.WorkspaceID, productID)
	if err != nil {
		return 0, err
	}
	for _, b := range baselines {
		if b.Name == name {
			return b.ID, nil
		}
	}
	return 0, fmt.Errorf("baseline %s not found after creation", name)
}
