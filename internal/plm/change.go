package plm

// Change request categories.
const (
	ChangeCorrective = "CORRECTIVE"
	ChangePerfective = "PERFECTIVE"
	ChangeAdaptive   = "ADAPTIVE"
	ChangeOther      = "OTHER"
)

// Change issue priorities.
const (
	PriorityLow       = "LOW"
	PriorityMedium    = "MEDIUM"
	PriorityHigh      = "HIGH"
	PriorityEmergency = "EMERGENCY"
)

// ChangeRequest is a workspace-scoped request for a change, optionally
// linked to the parts it affects.
type ChangeRequest struct {
	ID            int      `json:"id,omitempty"`
	WorkspaceID   string   `json:"workspaceId,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Assignee      string   `json:"assignee,omitempty"`
	AffectedParts []string `json:"affectedParts,omitempty"`
}

// ChangeIssue is a reported problem with a priority and an assignee.
type ChangeIssue struct {
	ID          int    `json:"id,omitempty"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
}

// ChangeOrder is an order to execute one or more change requests.
type ChangeOrder struct {
	ID                int    `json:"id,omitempty"`
	WorkspaceID       string `json:"workspaceId,omitempty"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Category          string `json:"category,omitempty"`
	Assignee          string `json:"assignee,omitempty"`
	AddressedRequests []int  `json:"addressedRequests,omitempty"`
}
