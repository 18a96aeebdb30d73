package plm

// ConfigurationItem binds a product id to the root part of its structure.
type ConfigurationItem struct {
	WorkspaceID      string           `json:"workspaceId,omitempty"`
	ID               string           `json:"id"`
	DesignItemNumber string           `json:"designItemNumber"`
	Description      string           `json:"description,omitempty"`
	PathToPathLinks  []PathToPathLink `json:"pathToPathLinks,omitempty"`
}

// Baseline types. A LATEST baseline snapshots the newest checked-in
// iterations; RELEASED baselines only include released revisions.
const (
	BaselineLatest   = "LATEST"
	BaselineReleased = "RELEASED"
)

// Baseline is a frozen snapshot of a product structure, optionally with
// explicit optional-link inclusion overrides.
type Baseline struct {
	ID                  int              `json:"id,omitempty"`
	ConfigurationItemID string           `json:"configurationItemId"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	OptionalUsageLinks  []string         `json:"optionalUsageLinks,omitempty"`
	PathToPathLinks     []PathToPathLink `json:"pathToPathLinks,omitempty"`
}

// ProductInstance is a serial-numbered physical instance bound to one
// baseline.
type ProductInstance struct {
	ConfigurationItemID string `json:"configurationItemId"`
	SerialNumber        string `json:"serialNumber"`
	BaselineID          int    `json:"baselineId"`
}

// ProductConfiguration narrows a product structure to a set of optional
// usage links.
type ProductConfiguration struct {
	Name                string   `json:"name"`
	ConfigurationItemID string   `json:"configurationItemId"`
	Description         string   `json:"description,omitempty"`
	OptionalUsageLinks  []string `json:"optionalUsageLinks,omitempty"`
	ACL                 *ACL     `json:"acl,omitempty"`
}

// PathToPathLink is a typed edge between two paths of a product structure.
type PathToPathLink struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	SourcePath  string `json:"sourcePath"`
	TargetPath  string `json:"targetPath"`
}

// StructureNode is one node of a filtered product structure.
type StructureNode struct {
	Number     string          `json:"number"`
	Path       string          `json:"path"`
	Components []StructureNode `json:"components,omitempty"`
}
