package plm

// Access levels used by workspace memberships and ACL entries.
const (
	AccessFull      = "FULL_ACCESS"
	AccessReadOnly  = "READ_ONLY"
	AccessForbidden = "FORBIDDEN"
)

// Account is a server-wide login. Accounts are created once and reused;
// creating an existing login is a conflict.
type Account struct {
	Login    string `json:"login"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Language string `json:"language"`
	TimeZone string `json:"timeZone"`
	Password string `json:"password,omitempty"`
}

// Workspace is the isolation boundary for all seeded entities.
type Workspace struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

// User is an account's membership in a workspace.
type User struct {
	WorkspaceID string `json:"workspaceId,omitempty"`
	Login       string `json:"login"`
	Membership  string `json:"membership,omitempty"`
	Enabled     bool   `json:"enabled,omitempty"`
}

// UserGroup is a named collection of users inside a workspace, used as an
// ACL and role target.
type UserGroup struct {
	WorkspaceID string `json:"workspaceId,omitempty"`
	ID          string `json:"id"`
	Users       []User `json:"users,omitempty"`
}

// GroupMembership carries a group's workspace-level access.
type GroupMembership struct {
	WorkspaceID string `json:"workspaceId"`
	MemberID    string `json:"memberId"`
	ReadOnly    bool   `json:"readOnly"`
}

// ACLEntry maps one group or user to an access level.
type ACLEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ACL is a total mapping over the groups and users it names.
type ACL struct {
	GroupEntries []ACLEntry `json:"groupEntries,omitempty"`
	UserEntries  []ACLEntry `json:"userEntries,omitempty"`
}

// Folder is a document folder. Folders nest under the workspace root only.
type Folder struct {
	Name string `json:"name"`
}

// Tag is a workspace label assignable to documents.
type Tag struct {
	WorkspaceID string `json:"workspaceId,omitempty"`
	ID          string `json:"id"`
	Label       string `json:"label"`
}

// Milestone is a dated workspace milestone.
type Milestone struct {
	ID          int    `json:"id,omitempty"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}
