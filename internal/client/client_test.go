package client_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
	"github.com/openplm/plmseed/internal/testhelpers"
)

func TestPingNeedsNoAuth(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	c := client.New(baseURL)

	require.NoError(t, c.Ping(context.Background()))
}

func TestAuthenticateBadCredentials(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()

	c := client.New(baseURL)
	require.NoError(t, c.CreateAccount(ctx, plm.Account{Login: "rob", Name: "rob", Password: "password"}))

	err := c.Authenticate(ctx, "rob", "wrong")
	require.Error(t, err)

	_, err = client.Login(ctx, baseURL, "nobody", "password")
	require.Error(t, err)
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)

	c := client.New(baseURL)
	err := c.CreateWorkspace(context.Background(), plm.Workspace{ID: "wks"}, "rob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestErrorClassification(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()
	c := testhelpers.LoginTestClient(t, baseURL, "rob")

	// Duplicate account is a conflict.
	err := c.CreateAccount(ctx, plm.Account{Login: "rob", Name: "rob", Password: "password"})
	assert.True(t, client.IsConflict(err), "error = %v", err)
	assert.False(t, client.IsNotFound(err))

	// Missing list of values is a not-found.
	require.NoError(t, c.CreateWorkspace(ctx, plm.Workspace{ID: "wks"}, "rob"))
	_, err = c.GetLOV(ctx, "wks", "NoSuchList")
	assert.True(t, client.IsNotFound(err), "error = %v", err)
	assert.False(t, client.IsConflict(err))
}

func TestDocumentLifecycle(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()
	c := testhelpers.LoginTestClient(t, baseURL, "rob")
	require.NoError(t, c.CreateWorkspace(ctx, plm.Workspace{ID: "wks"}, "rob"))

	rev, err := c.CreateDocument(ctx, "wks", plm.DocumentCreation{Reference: "DOC-001", Title: "First"}, "")
	require.NoError(t, err)
	assert.Equal(t, "A", rev.Version)
	assert.True(t, rev.CheckedOut)
	assert.Equal(t, "rob", rev.CheckOutBy)

	it := rev.LastIteration()
	require.NotNil(t, it)
	it.Attributes = []plm.Attribute{{Name: "sent", Type: plm.AttributeBoolean, Value: "true"}}
	require.NoError(t, c.UpdateDocumentIteration(ctx, "wks", *it))

	err = c.UploadDocumentFile(ctx, "wks", "DOC-001", "A", 1, "readme.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, c.CheckInDocument(ctx, "wks", "DOC-001", "A"))

	// Updating after check-in is rejected.
	err = c.UpdateDocumentIteration(ctx, "wks", *it)
	require.Error(t, err)

	// Checking out again opens iteration 2.
	require.NoError(t, c.CheckOutDocument(ctx, "wks", "DOC-001", "A"))
	err = c.CheckOutDocument(ctx, "wks", "DOC-001", "A")
	assert.True(t, client.IsConflict(err), "error = %v", err)
}

func TestPartConversionPolling(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()
	c := testhelpers.LoginTestClient(t, baseURL, "rob")
	require.NoError(t, c.CreateWorkspace(ctx, plm.Workspace{ID: "wks"}, "rob"))

	rev, err := c.CreatePart(ctx, "wks", plm.PartCreation{Number: "SEAT-010", Name: "Front seat"})
	require.NoError(t, err)

	err = c.UploadPartFile(ctx, "wks", rev.Number, rev.Version, 1,
		client.PartFileNativeCAD, "seat.obj", strings.NewReader("o seat"))
	require.NoError(t, err)

	status, err := c.ConversionStatus(ctx, "wks", rev.Number, rev.Version, 1)
	require.NoError(t, err)
	assert.Equal(t, plm.ConversionPending, status.Status)

	status, err = c.ConversionStatus(ctx, "wks", rev.Number, rev.Version, 1)
	require.NoError(t, err)
	assert.Equal(t, plm.ConversionDone, status.Status)
}

func TestSearchParts(t *testing.T) {
	baseURL := testhelpers.NewTestServer(t)
	ctx := context.Background()
	c := testhelpers.LoginTestClient(t, baseURL, "rob")
	require.NoError(t, c.CreateWorkspace(ctx, plm.Workspace{ID: "wks"}, "rob"))

	for _, number := range []string{"SEAT-010", "SEAT-020", "ENGINE-050"} {
		_, err := c.CreatePart(ctx, "wks", plm.PartCreation{Number: number})
		require.NoError(t, err)
	}

	masters, err := c.SearchParts(ctx, "wks", "SEAT", 10)
	require.NoError(t, err)
	require.Len(t, masters, 2)
	assert.Equal(t, "SEAT-010", masters[0].Number)
	require.NotNil(t, masters[0].LastRevision)
	assert.Equal(t, "A", masters[0].LastRevision.Version)
}
