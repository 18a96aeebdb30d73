package loader_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplm/plmseed/internal/loader"
	"github.com/openplm/plmseed/internal/plm"
	"github.com/openplm/plmseed/internal/testhelpers"
)

func TestBuildAttributeBoolean(t *testing.T) {
	ctx := context.Background()

	attr, err := loader.BuildAttribute(ctx, nil, loader.AttributeSpec{
		Name: "sent", Type: "BOOLEAN", Value: json.RawMessage(`true`),
	})
	require.NoError(t, err)
	assert.Equal(t, plm.AttributeBoolean, attr.Type)
	assert.Equal(t, "true", attr.Value)

	// A missing or non-boolean value renders as "false".
	attr, err = loader.BuildAttribute(ctx, nil, loader.AttributeSpec{Name: "sent", Type: "BOOLEAN"})
	require.NoError(t, err)
	assert.Equal(t, "false", attr.Value)
}

func TestBuildAttributeScalars(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		kind  string
		value string
		want  string
	}{
		{"text", "TEXT", `"hello"`, "hello"},
		{"number", "NUMBER", `149.90`, "149.90"},
		{"date", "DATE", `"2024-06-30"`, "2024-06-30"},
		{"url", "URL", `"https://example.com"`, "https://example.com"},
		{"lowercase kind", "text", `"hello"`, "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attr, err := loader.BuildAttribute(ctx, nil, loader.AttributeSpec{
				Name: "a", Type: tc.kind, Value: json.RawMessage(tc.value),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, attr.Value)
		})
	}
}

func TestBuildAttributeEmptyKindDefaultsToText(t *testing.T) {
	attr, err := loader.BuildAttribute(context.Background(), nil, loader.AttributeSpec{
		Name: "note", Value: json.RawMessage(`"plain"`),
	})
	require.NoError(t, err)
	assert.Equal(t, plm.AttributeText, attr.Type)
	assert.Equal(t, "plain", attr.Value)
}

func TestBuildAttributeUnknownKind(t *testing.T) {
	_, err := loader.BuildAttribute(context.Background(), nil, loader.AttributeSpec{
		Name: "weird", Type: "GEOMETRY",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrUnsupportedAttributeType)
}

func TestBuildAttributeTemplateUnknownKindFallsBackToText(t *testing.T) {
	attr, err := loader.BuildAttributeTemplate(context.Background(), nil, loader.AttributeSpec{
		Name: "weird", Type: "GEOMETRY", Mandatory: true,
	})
	require.NoError(t, err)
	assert.Equal(t, plm.AttributeText, attr.Type)
	assert.True(t, attr.Mandatory)
}

func TestBuildAttributeLOV(t *testing.T) {
	ctx := context.Background()
	baseURL := testhelpers.NewTestServer(t)
	c := testhelpers.LoginTestClient(t, baseURL, "rob")
	require.NoError(t, c.CreateWorkspace(ctx, plm.Workspace{ID: "wks-lov"}, "rob"))

	reg := loader.NewLOVRegistry(c, "wks-lov")
	rep := &loader.Report{}
	reg.RegisterAll(ctx, []loader.LOVSpec{{
		Name: "Color",
		Values: []loader.LOVValueSpec{
			{Name: "Red", Value: "#FF0000"},
			{Name: "Blue", Value: "#0000FF"},
		},
	}}, rep)
	require.True(t, rep.OK())

	attr, err := loader.BuildAttribute(ctx, reg, loader.AttributeSpec{
		Name: "paperColor", Type: "LOV", LOVName: "Color", Value: json.RawMessage(`1`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Blue", attr.Value)
	assert.Equal(t, 1, attr.Index)
	assert.Len(t, attr.Items, 2)

	// Without a lovName the attribute is skipped, not failed.
	attr, err = loader.BuildAttribute(ctx, reg, loader.AttributeSpec{
		Name: "paperColor", Type: "LOV", Value: json.RawMessage(`1`),
	})
	require.NoError(t, err)
	assert.Nil(t, attr)

	// An unregistered list is also a skip.
	attr, err = loader.BuildAttribute(ctx, reg, loader.AttributeSpec{
		Name: "paperColor", Type: "LOV", LOVName: "NoSuchList", Value: json.RawMessage(`1`),
	})
	require.NoError(t, err)
	assert.Nil(t, attr)

	// An out-of-range index is a hard failure.
	_, err = loader.BuildAttribute(ctx, reg, loader.AttributeSpec{
		Name: "paperColor", Type: "LOV", LOVName: "Color", Value: json.RawMessage(`5`),
	})
	require.Error(t, err)
}
