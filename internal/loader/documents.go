package loader

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
)

// LoadDocuments creates the "DOC" section of a sample: folders first, then
// document templates, then documents. Each stage is a best-effort batch;
// within a batch a failing item is recorded and the rest continues.
func LoadDocuments(ctx context.Context, c *client.Client, reg *LOVRegistry, workspaceID string, spec *DocumentSpec) (*Report, error) {
	rep := &Report{}
	if spec == nil {
		return rep, nil
	}

	for _, folder := range spec.Folders {
		if folder == "" {
			rep.skip("folder", "", "missing name")
			continue
		}
		if err := c.CreateFolder(ctx, workspaceID, plm.Folder{Name: folder}); err != nil {
			rep.fail("folder", folder, err)
			continue
		}
		rep.created("folder", folder)
	}

	for _, tmpl := range spec.Templates {
		if tmpl.ID == "" {
			rep.skip("document template", "", "missing id")
			continue
		}
		template := plm.DocumentTemplate{
			WorkspaceID:      workspaceID,
			Reference:        tmpl.ID,
			DocumentType:     tmpl.Type,
			Mask:             tmpl.Mask,
			IDGeneration:     tmpl.IDGeneration,
			AttributesLocked: tmpl.AttributesLocked,
			Attributes:       buildTemplateAttributes(ctx, reg, tmpl.Attributes, rep, tmpl.ID),
		}
		if err := c.CreateDocumentTemplate(ctx, workspaceID, template); err != nil {
			rep.fail("document template", tmpl.ID, err)
			continue
		}
		rep.created("document template", tmpl.ID)
	}

	for _, doc := range spec.Documents {
		if doc.ID == "" {
			rep.skip("document", "", "missing docID")
			continue
		}
		if err := createDocument(ctx, c, reg, workspaceID, doc, rep); err != nil {
			rep.fail("document", doc.ID, err)
			continue
		}
		rep.created("document", doc.ID)
	}

	return rep, nil
}

// createDocument creates one document, fills its first iteration with
// attributes and links, and checks it in.
func createDocument(ctx context.Context, c *client.Client, reg *LOVRegistry, workspaceID string, doc DocumentItemSpec, rep *Report) error {
	creation := plm.DocumentCreation{
		WorkspaceID: workspaceID,
		Reference:   doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		TemplateID:  doc.Template,
	}
	revision, err := c.CreateDocument(ctx, workspaceID, creation, doc.Folder)
	if err != nil {
		return err
	}

	iteration := revision.LastIteration()
	if iteration == nil {
		return fmt.Errorf("document %s: created without an iteration", doc.ID)
	}
	iteration.Attributes = buildAttributes(ctx, reg, doc.Attributes, rep, doc.ID)
	for _, link := range doc.Links {
		iteration.DocumentLinks = append(iteration.DocumentLinks, plm.DocumentLink{
			DocumentID: link.DocumentID,
			Comment:    link.Comment,
		})
	}
	if err := c.UpdateDocumentIteration(ctx, workspaceID, *iteration); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}

	if err := c.CheckInDocument(ctx, workspaceID, revision.DocumentID, revision.Version); err != nil {
		return fmt.Errorf("check in: %w", err)
	}
	return nil
}
