package plm

// DocumentTemplate defines the shape of later document instances: a
// reference, a numbering mask and typed attribute definitions.
type DocumentTemplate struct {
	WorkspaceID      string              `json:"workspaceId,omitempty"`
	Reference        string              `json:"reference"`
	DocumentType     string              `json:"documentType,omitempty"`
	Mask             string              `json:"mask,omitempty"`
	IDGeneration     bool                `json:"idGeneration,omitempty"`
	AttributesLocked bool                `json:"attributesLocked,omitempty"`
	Attributes       []AttributeTemplate `json:"attributeTemplates,omitempty"`
}

// DocumentCreation is the payload for creating a document master in a folder.
type DocumentCreation struct {
	WorkspaceID     string        `json:"workspaceId,omitempty"`
	Reference       string        `json:"reference"`
	Title           string        `json:"title,omitempty"`
	Description     string        `json:"description,omitempty"`
	TemplateID      string        `json:"templateId,omitempty"`
	WorkflowModelID string        `json:"workflowModelId,omitempty"`
	RoleMapping     []RoleMapping `json:"roleMapping,omitempty"`
	ACL             *ACL          `json:"acl,omitempty"`
}

// DocumentLink is a cross-document reference attached to an iteration.
type DocumentLink struct {
	DocumentID string `json:"docId"`
	Comment    string `json:"comment,omitempty"`
}

// DocumentIteration is one mutable state of a document revision. Only the
// latest iteration of a checked-out revision may be updated.
type DocumentIteration struct {
	WorkspaceID   string         `json:"workspaceId"`
	DocumentID    string         `json:"documentMasterId"`
	Version       string         `json:"version"`
	Iteration     int            `json:"iteration"`
	RevisionNote  string         `json:"revisionNote,omitempty"`
	Attributes    []Attribute    `json:"instanceAttributes,omitempty"`
	DocumentLinks []DocumentLink `json:"linkedDocuments,omitempty"`
}

// DocumentRevision identifies a document version and its iterations.
type DocumentRevision struct {
	WorkspaceID string              `json:"workspaceId"`
	DocumentID  string              `json:"documentMasterId"`
	Version     string              `json:"version"`
	Title       string              `json:"title,omitempty"`
	CheckedOut  bool                `json:"checkedOut,omitempty"`
	CheckOutBy  string              `json:"checkOutUser,omitempty"`
	Iterations  []DocumentIteration `json:"documentIterations,omitempty"`
}

// LastIteration returns the newest iteration of the revision, or nil when the
// revision has none.
func (r *DocumentRevision) LastIteration() *DocumentIteration {
	if len(r.Iterations) == 0 {
		return nil
	}
	return &r.Iterations[len(r.Iterations)-1]
}
