package plm

// PartTemplate defines the shape of later part instances.
type PartTemplate struct {
	WorkspaceID      string              `json:"workspaceId,omitempty"`
	Reference        string              `json:"reference"`
	PartType         string              `json:"partType,omitempty"`
	Mask             string              `json:"mask,omitempty"`
	IDGeneration     bool                `json:"idGeneration,omitempty"`
	AttributesLocked bool                `json:"attributesLocked,omitempty"`
	Attributes       []AttributeTemplate `json:"attributeTemplates,omitempty"`
}

// PartCreation is the payload for creating a part master.
type PartCreation struct {
	WorkspaceID     string        `json:"workspaceId,omitempty"`
	Number          string        `json:"number"`
	Name            string        `json:"name,omitempty"`
	Description     string        `json:"description,omitempty"`
	StandardPart    bool          `json:"standardPart,omitempty"`
	TemplateID      string        `json:"templateId,omitempty"`
	WorkflowModelID string        `json:"workflowModelId,omitempty"`
	RoleMapping     []RoleMapping `json:"roleMapping,omitempty"`
	ACL             *ACL          `json:"acl,omitempty"`
}

// CADInstance is one 3D placement of a component: three rotations and three
// translations.
type CADInstance struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
	RZ float64 `json:"rz"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
	TZ float64 `json:"tz"`
}

// Component references a part by number and version inside a usage link.
type Component struct {
	Number      string  `json:"number"`
	Version     string  `json:"version,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Optional    bool    `json:"optional,omitempty"`
	Description string  `json:"partUsageLinkReferenceDescription,omitempty"`
}

// PartSubstituteLink is an alternate component for the same position.
type PartSubstituteLink struct {
	Substitute   Component     `json:"substitute"`
	Amount       float64       `json:"amount"`
	Unit         string        `json:"unit,omitempty"`
	CADInstances []CADInstance `json:"cadInstances,omitempty"`
}

// PartUsageLink is a bill-of-materials edge from an assembly iteration to a
// component, with quantity, optionality and one CAD placement per instance.
type PartUsageLink struct {
	Component    Component            `json:"component"`
	Amount       float64              `json:"amount"`
	Unit         string               `json:"unit,omitempty"`
	Optional     bool                 `json:"optional,omitempty"`
	Description  string               `json:"referenceDescription,omitempty"`
	CADInstances []CADInstance        `json:"cadInstances,omitempty"`
	Substitutes  []PartSubstituteLink `json:"substituteLinks,omitempty"`
	FullID       string               `json:"fullId,omitempty"`
}

// PartIteration is one mutable state of a part revision.
type PartIteration struct {
	WorkspaceID   string          `json:"workspaceId"`
	Number        string          `json:"number"`
	Version       string          `json:"version"`
	Iteration     int             `json:"iteration"`
	IterationNote string          `json:"iterationNote,omitempty"`
	Attributes    []Attribute     `json:"instanceAttributes,omitempty"`
	Components    []PartUsageLink `json:"components,omitempty"`
	DocumentLinks []DocumentLink  `json:"linkedDocuments,omitempty"`
}

// PartRevision identifies a part version and its iterations.
type PartRevision struct {
	WorkspaceID string          `json:"workspaceId"`
	Number      string          `json:"number"`
	Version     string          `json:"version"`
	Name        string          `json:"name,omitempty"`
	CheckedOut  bool            `json:"checkedOut,omitempty"`
	CheckOutBy  string          `json:"checkOutUser,omitempty"`
	Iterations  []PartIteration `json:"partIterations,omitempty"`
}

// LastIteration returns the newest iteration of the revision, or nil.
func (r *PartRevision) LastIteration() *PartIteration {
	if len(r.Iterations) == 0 {
		return nil
	}
	return &r.Iterations[len(r.Iterations)-1]
}

// PartMaster is the search result shape for part lookups by number.
type PartMaster struct {
	WorkspaceID  string        `json:"workspaceId"`
	Number       string        `json:"number"`
	Name         string        `json:"name,omitempty"`
	LastRevision *PartRevision `json:"lastRevision,omitempty"`
}

// Conversion states reported for uploaded native CAD files.
const (
	ConversionPending = "pending"
	ConversionDone    = "done"
	ConversionFailed  = "failed"
)

// ConversionStatus reports the server-side state of a 3D file conversion.
type ConversionStatus struct {
	Number    string `json:"number"`
	Version   string `json:"version"`
	Iteration int    `json:"iteration"`
	Status    string `json:"status"`
}
