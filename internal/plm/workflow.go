package plm

// Activity types. Sequential activities complete tasks in order; parallel
// activities complete once TasksToComplete tasks are done.
const (
	ActivitySequential = "SEQUENTIAL"
	ActivityParallel   = "PARALLEL"
)

// Role resolves by default to specific users and groups unless overridden
// per document or part via a RoleMapping.
type Role struct {
	WorkspaceID    string      `json:"workspaceId,omitempty"`
	Name           string      `json:"name"`
	AssignedUsers  []User      `json:"defaultAssignedUsers,omitempty"`
	AssignedGroups []UserGroup `json:"defaultAssignedGroups,omitempty"`
}

// TaskModel is one task inside an activity, assigned to a role.
type TaskModel struct {
	Num          int    `json:"num"`
	Title        string `json:"title"`
	Instructions string `json:"instructions,omitempty"`
	Role         *Role  `json:"role,omitempty"`
}

// ActivityModel groups ordered or parallel tasks under a life-cycle state.
type ActivityModel struct {
	Step            int         `json:"step"`
	Type            string      `json:"type"`
	LifeCycleState  string      `json:"lifeCycleState,omitempty"`
	TasksToComplete int         `json:"tasksToComplete,omitempty"`
	Tasks           []TaskModel `json:"taskModels"`
}

// WorkflowModel is a template life-cycle for documents and parts.
type WorkflowModel struct {
	WorkspaceID         string          `json:"workspaceId,omitempty"`
	ID                  string          `json:"id"`
	Reference           string          `json:"reference,omitempty"`
	FinalLifeCycleState string          `json:"finalLifeCycleState,omitempty"`
	Activities          []ActivityModel `json:"activityModels,omitempty"`
}

// RoleMapping overrides a role's default assignment for one document or part.
type RoleMapping struct {
	RoleName   string   `json:"roleName"`
	UserLogins []string `json:"userLogins,omitempty"`
	GroupIDs   []string `json:"groupIds,omitempty"`
}

// RolesInvolved collects the distinct roles referenced by the workflow's
// tasks, in first-seen order.
func (w *WorkflowModel) RolesInvolved() []Role {
	seen := make(map[string]bool)
	var roles []Role
	for _, activity := range w.Activities {
		for _, task := range activity.Tasks {
			if task.Role == nil || seen[task.Role.Name] {
				continue
			}
			seen[task.Role.Name] = true
			roles = append(roles, *task.Role)
		}
	}
	return roles
}
