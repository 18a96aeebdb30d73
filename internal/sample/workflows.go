package sample

import (
	"context"
	"fmt"

	"github.com/openplm/plmseed/internal/plm"
)

// Demo workflow roles and their default assignees.
var demoRoles = []plm.Role{
	{Name: "designers", AssignedUsers: []plm.User{{Login: "rob"}, {Login: "joe"}}},
	{Name: "technicians", AssignedUsers: []plm.User{{Login: "steve"}, {Login: "mickey"}}},
	{Name: "ceo", AssignedUsers: []plm.User{{Login: "bill"}}},
	{Name: "ingineers", AssignedGroups: []plm.UserGroup{{ID: "Group3"}}},
	{Name: "support", AssignedGroups: []plm.UserGroup{{ID: "Group4"}}},
}

// Task describes one workflow task assigned to a role.
type Task struct {
	Title        string
	Instructions string
	Role         string
}

// SequentialActivity builds an activity whose tasks complete in order.
func SequentialActivity(step int, state string, tasks []Task) plm.ActivityModel {
	return plm.ActivityModel{
		Step:           step,
		Type:           plm.ActivitySequential,
		LifeCycleState: state,
		Tasks:          taskModels(tasks),
	}
}

// ParallelActivity builds an activity that completes once toComplete of its
// tasks are done.
func ParallelActivity(step int, state string, toComplete int, tasks []Task) plm.ActivityModel {
	return plm.ActivityModel{
		Step:            step,
		Type:            plm.ActivityParallel,
		LifeCycleState:  state,
		TasksToComplete: toComplete,
		Tasks:           taskModels(tasks),
	}
}

// NewWorkflow assembles a workflow model from its activities.
func NewWorkflow(id, finalState string, activities ...plm.ActivityModel) plm.WorkflowModel {
	return plm.WorkflowModel{
		ID:                  id,
		Reference:           id,
		FinalLifeCycleState: finalState,
		Activities:          activities,
	}
}

func taskModels(tasks []Task) []plm.TaskModel {
	models := make([]plm.TaskModel, 0, len(tasks))
	for i, t := range tasks {
		models = append(models, plm.TaskModel{
			Num:          i,
			Title:        t.Title,
			Instructions: t.Instructions,
			Role:         &plm.Role{Name: t.Role},
		})
	}
	return models
}

// RoleMappingFor resolves the roles a workflow involves to their default
// assignees, producing the per-item mapping sent at document or part creation.
func RoleMappingFor(w plm.WorkflowModel, defaults []plm.Role) []plm.RoleMapping {
	byName := make(map[string]plm.Role, len(defaults))
	for _, role := range defaults {
		byName[role.Name] = role
	}
	var mapping []plm.RoleMapping
	for _, role := range w.RolesInvolved() {
		def := byName[role.Name]
		rm := plm.RoleMapping{RoleName: role.Name}
		for _, user := range def.AssignedUsers {
			rm.UserLogins = append(rm.UserLogins, user.Login)
		}
		for _, group := range def.AssignedGroups {
			rm.GroupIDs = append(rm.GroupIDs, group.ID)
		}
		mapping = append(mapping, rm)
	}
	return mapping
}

func firstWorkflow() plm.WorkflowModel {
	return NewWorkflow("My first workflow", "Released",
		SequentialActivity(0, "Design", []Task{
			{Title: "Draw the design", Instructions: "Provide sketches and 3D models", Role: "designers"},
			{Title: "Review the design", Instructions: "Check measurements and materials", Role: "ingineers"},
		}),
		SequentialActivity(1, "Validation", []Task{
			{Title: "Build a prototype", Instructions: "Assemble one unit", Role: "technicians"},
			{Title: "Approve the prototype", Instructions: "Sign off for production", Role: "ceo"},
			{Title: "Document the product", Instructions: "Write the user manual", Role: "support"},
		}),
	)
}

func doorWorkflow() plm.WorkflowModel {
	return NewWorkflow("Workflow-door-creation", "Ready",
		SequentialActivity(0, "Specification", []Task{
			{Title: "Specify the door", Instructions: "List dimensions and options", Role: "designers"},
		}),
		ParallelActivity(1, "Build", 2, []Task{
			{Title: "Machine the frame", Instructions: "Use the standard profile", Role: "technicians"},
			{Title: "Fit the window", Instructions: "Seal and test", Role: "technicians"},
			{Title: "Fit the lock", Instructions: "Check both keys", Role: "ingineers"},
		}),
	)
}

// demoWorkflow returns the built demo workflow with the given id.
func demoWorkflow(id string) plm.WorkflowModel {
	for _, w := range []plm.WorkflowModel{firstWorkflow(), doorWorkflow()} {
		if w.ID == id {
			return w
		}
	}
	return plm.WorkflowModel{}
}

// createWorkflows registers the demo roles and two workflow templates, and
// hides the door workflow from the consumer groups.
func (l *Loader) createWorkflows(ctx context.Context) error {
	for _, role := range demoRoles {
		if _, err := l.admin.CreateRole(ctx, l.opts.WorkspaceID, role); err != nil {
			return fmt.Errorf("create role %s: %w", role.Name, err)
		}
	}

	first := firstWorkflow()
	if err := l.admin.CreateWorkflowModel(ctx, l.opts.WorkspaceID, first); err != nil {
		return fmt.Errorf("create workflow %q: %w", first.ID, err)
	}

	door := doorWorkflow()
	if err := l.admin.CreateWorkflowModel(ctx, l.opts.WorkspaceID, door); err != nil {
		return fmt.Errorf("create workflow %q: %w", door.ID, err)
	}

	acl := GroupACL(map[string]string{
		"Group1": plm.AccessFull,
		"Group2": plm.AccessFull,
		"Group3": plm.AccessFull,
		"Group4": plm.AccessForbidden,
		"Group5": plm.AccessForbidden,
	})
	if err := l.admin.UpdateWorkflowACL(ctx, l.opts.WorkspaceID, door.ID, acl); err != nil {
		return fmt.Errorf("restrict workflow %q: %w", door.ID, err)
	}
	return nil
}
