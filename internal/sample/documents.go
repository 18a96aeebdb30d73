package sample

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// Demo document templates.
var demoDocumentTemplates = []plm.DocumentTemplate{
	{
		Reference:    "Letter",
		DocumentType: "paper",
		Mask:         "LETTER-###",
		IDGeneration: true,
		Attributes: []plm.AttributeTemplate{
			{Name: "recipient", Type: plm.AttributeText, Mandatory: true},
			{Name: "sent", Type: plm.AttributeBoolean},
		},
	},
	{
		Reference:    "Invoice",
		DocumentType: "paper",
		Mask:         "INVOICE-###",
		IDGeneration: true,
		Attributes: []plm.AttributeTemplate{
			{Name: "totalPrice", Type: plm.AttributeNumber, Mandatory: true},
			{Name: "dueDate", Type: plm.AttributeDate},
		},
	},
	{
		Reference:    "UserManuals",
		DocumentType: "documentation",
		Attributes: []plm.AttributeTemplate{
			{Name: "language", Type: plm.AttributeText},
		},
	},
	{
		Reference:    "APIDocuments",
		DocumentType: "documentation",
		Attributes: []plm.AttributeTemplate{
			{Name: "endpoint", Type: plm.AttributeURL},
		},
	},
}

// demoDocument describes one document to create, fill and check in. Documents
// with a workflow also get the workflow's role mapping and the content ACL.
type demoDocument struct {
	folder     string
	id         string
	title      string
	template   string
	workflow   string
	file       string
	attributes []plm.Attribute
	links      []plm.DocumentLink
}

var demoDocuments = []demoDocument{
	{
		folder:   "Letters",
		id:       "LETTER-001",
		title:    "Order confirmation",
		template: "Letter",
		workflow: "My first workflow",
		file:     "letter-001.txt",
		attributes: []plm.Attribute{
			{Name: "recipient", Type: plm.AttributeText, Value: "rob"},
			{Name: "sent", Type: plm.AttributeBoolean, Value: "true"},
		},
	},
	{
		folder:   "Invoices",
		id:       "INVOICE-001",
		title:    "City car invoice",
		template: "Invoice",
		workflow: "My first workflow",
		file:     "invoice-001.txt",
		attributes: []plm.Attribute{
			{Name: "totalPrice", Type: plm.AttributeNumber, Value: "14990"},
			{Name: "dueDate", Type: plm.AttributeDate, Value: "2026-09-30"},
		},
		links: []plm.DocumentLink{
			{DocumentID: "LETTER-001", Comment: "order confirmation"},
		},
	},
	{
		folder:   "Documentation",
		id:       "USER-MANUAL-001",
		title:    "City car user manual",
		template: "UserManuals",
		file:     "user-manual.txt",
		attributes: []plm.Attribute{
			{Name: "language", Type: plm.AttributeText, Value: "en"},
		},
	},
	{
		folder:   "APIManuals",
		id:       "API-MANUAL-001",
		title:    "Onboard API manual",
		template: "APIDocuments",
		file:     "api-manual.txt",
		attributes: []plm.Attribute{
			{Name: "endpoint", Type: plm.AttributeURL, Value: "https://car.example.com/api"},
		},
	},
}

// createDocumentTemplates registers the demo document templates.
func (l *Loader) createDocumentTemplates(ctx context.Context) error {
	for _, template := range demoDocumentTemplates {
		if err := l.admin.CreateDocumentTemplate(ctx, l.opts.WorkspaceID, template); err != nil {
			return fmt.Errorf("create template %s: %w", template.Reference, err)
		}
	}
	return nil
}

// createDocuments creates each demo document, fills its first iteration,
// uploads its file and checks it in.
func (l *Loader) createDocuments(ctx context.Context) error {
	for _, doc := range demoDocuments {
		if err := l.createDocument(ctx, doc); err != nil {
			return fmt.Errorf("document %s: %w", doc.id, err)
		}
	}
	return nil
}

func (l *Loader) createDocument(ctx context.Context, doc demoDocument) error {
	creation := plm.DocumentCreation{
		WorkspaceID: l.opts.WorkspaceID,
		Reference:   doc.id,
		Title:       doc.title,
		TemplateID:  doc.template,
	}
	if doc.workflow != "" {
		creation.WorkflowModelID = doc.workflow
		creation.RoleMapping = RoleMappingFor(demoWorkflow(doc.workflow), demoRoles)
		creation.ACL = contentACL()
	}
	revision, err := l.admin.CreateDocument(ctx, l.opts.WorkspaceID, creation, doc.folder)
	if err != nil {
		return err
	}

	iteration := revision.LastIteration()
	if iteration == nil {
		return fmt.Errorf("created without an iteration")
	}
	iteration.Attributes = doc.attributes
	iteration.DocumentLinks = doc.links
	if err := l.admin.UpdateDocumentIteration(ctx, l.opts.WorkspaceID, *iteration); err != nil {
		return fmt.Errorf("update iteration: %w", err)
	}

	if doc.file != "" {
		content, err := asset(doc.file)
		if err != nil {
			return err
		}
		err = l.admin.UploadDocumentFile(ctx, l.opts.WorkspaceID,
			revision.DocumentID, revision.Version, iteration.Iteration, doc.file, content)
		if err != nil {
			return fmt.Errorf("upload %s: %w", doc.file, err)
		}
	}

	return l.admin.CheckInDocument(ctx, l.opts.WorkspaceID, revision.DocumentID, revision.Version)
}
