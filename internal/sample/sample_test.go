package sample_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
	"github.com/openplm/plmseed/internal/sample"
	"github.com/openplm/plmseed/internal/testhelpers"
)

func TestDemoScenario(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()

	l := sample.New(sample.Options{
		Host:         baseURL,
		Login:        "admin",
		Password:     "password",
		WorkspaceID:  "wks-demo",
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  5 * time.Second,
	})
	require.NoError(t, l.Run(ctx))

	c, err := client.Login(ctx, baseURL, "admin", "password")
	require.NoError(t, err)

	// Both workflow templates exist.
	workflows, err := c.WorkflowModels(ctx, "wks-demo")
	require.NoError(t, err)
	assert.Len(t, workflows, 2)

	// The car structure resolves under the CityCar product.
	root, err := c.ProductStructure(ctx, "wks-demo", "CityCar")
	require.NoError(t, err)
	assert.Equal(t, "CAR-001", root.Number)
	assert.Len(t, root.Components, 2)

	// The door product got a baseline.
	baselines, err := c.Baselines(ctx, "wks-demo", "Door")
	require.NoError(t, err)
	require.Len(t, baselines, 1)
	assert.Equal(t, "Door-1.0", baselines[0].Name)

	// The scenario leaves work in progress behind.
	rev, err := c.GetPartRevision(ctx, "wks-demo", "DOOR-010", "A")
	require.NoError(t, err)
	assert.True(t, rev.CheckedOut)
	assert.Equal(t, "rob", rev.CheckOutBy)

	// Milestones were created and the second one restricted.
	milestones, err := c.Milestones(ctx, "wks-demo")
	require.NoError(t, err)
	assert.Len(t, milestones, 2)
}

func TestRoleMappingResolvesWorkflowRoles(t *testing.T) {
	w := sample.NewWorkflow("wf", "Done",
		sample.SequentialActivity(0, "Design", []sample.Task{
			{Title: "Draw", Role: "designers"},
			{Title: "Review", Role: "ceo"},
		}),
		sample.ParallelActivity(1, "Build", 1, []sample.Task{
			{Title: "Machine", Role: "designers"},
			{Title: "Document", Role: "support"},
		}),
	)
	defaults := []plm.Role{
		{Name: "designers", AssignedUsers: []plm.User{{Login: "rob"}, {Login: "joe"}}},
		{Name: "ceo", AssignedUsers: []plm.User{{Login: "bill"}}},
		{Name: "support", AssignedGroups: []plm.UserGroup{{ID: "Group4"}}},
	}

	mapping := sample.RoleMappingFor(w, defaults)
	require.Len(t, mapping, 3)

	// Roles appear once each, in first-seen order, with their defaults.
	assert.Equal(t, "designers", mapping[0].RoleName)
	assert.Equal(t, []string{"rob", "joe"}, mapping[0].UserLogins)
	assert.Equal(t, "ceo", mapping[1].RoleName)
	assert.Equal(t, []string{"bill"}, mapping[1].UserLogins)
	assert.Equal(t, "support", mapping[2].RoleName)
	assert.Equal(t, []string{"Group4"}, mapping[2].GroupIDs)
	assert.Empty(t, mapping[2].UserLogins)
}

func TestDemoScenarioRerunFails(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()

	opts := sample.Options{
		Host:         baseURL,
		Login:        "admin",
		Password:     "password",
		WorkspaceID:  "wks-demo",
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  5 * time.Second,
	}
	require.NoError(t, sample.New(opts).Run(ctx))

	// The caller's account may exist, but demo logins must not; the rerun
	// aborts on the first duplicate.
	err := sample.New(opts).Run(ctx)
	require.Error(t, err)
}

func TestDemoCleanup(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()

	l := sample.New(sample.Options{
		Host:         baseURL,
		Login:        "admin",
		Password:     "password",
		WorkspaceID:  "wks-demo",
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  5 * time.Second,
	})
	require.NoError(t, l.Run(ctx))
	require.NoError(t, l.Cleanup(ctx))

	c, err := client.Login(ctx, baseURL, "admin", "password")
	require.NoError(t, err)
	_, err = c.GetPartRevision(ctx, "wks-demo", "CAR-001", "A")
	assert.True(t, client.IsNotFound(err), "error = %v", err)
}
