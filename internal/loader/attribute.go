package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openplm/plmseed/internal/plm"
)

// ErrUnsupportedAttributeType is returned for attribute kinds the server
// does not understand.
var ErrUnsupportedAttributeType = errors.New("unsupported attribute type")

// BuildAttribute converts an attribute spec into a typed attribute instance.
// Scalar kinds carry their value through as an opaque string. For LOV kinds
// the named list must already exist in the registry's workspace; a missing
// LOV yields (nil, nil) and the caller skips the attribute.
func BuildAttribute(ctx context.Context, reg *LOVRegistry, spec AttributeSpec) (*plm.Attribute, error) {
	kind := strings.ToUpper(spec.Type)
	if kind == "" {
		kind = plm.AttributeText
	}

	switch kind {
	case plm.AttributeBoolean:
		value := "false"
		if spec.BoolValue() {
			value = "true"
		}
		return &plm.Attribute{Name: spec.Name, Type: plm.AttributeBoolean, Value: value}, nil

	case plm.AttributeText, plm.AttributeNumber, plm.AttributeDate, plm.AttributeURL:
		return &plm.Attribute{Name: spec.Name, Type: kind, Value: spec.StringValue()}, nil

	case plm.AttributeLOV:
		if spec.LOVName == "" {
			slog.Warn("skipping LOV attribute without a lovName", "attribute", spec.Name)
			return nil, nil
		}
		lov, err := reg.Lookup(ctx, spec.LOVName)
		if err != nil {
			return nil, fmt.Errorf("resolve lov %s: %w", spec.LOVName, err)
		}
		if lov == nil {
			slog.Warn("skipping attribute, list of values not registered",
				"attribute", spec.Name, "lov", spec.LOVName)
			return nil, nil
		}
		index, err := spec.IndexValue()
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(lov.Values) {
			return nil, fmt.Errorf("attribute %s: index %d out of range for lov %s", spec.Name, index, spec.LOVName)
		}
		return &plm.Attribute{
			Name:    spec.Name,
			Type:    plm.AttributeLOV,
			LOVName: spec.LOVName,
			Index:   index,
			Items:   lov.Values,
			Value:   lov.Values[index].Name,
		}, nil

	default:
		return nil, fmt.Errorf("attribute %s: %w: %s", spec.Name, ErrUnsupportedAttributeType, spec.Type)
	}
}

// BuildAttributeTemplate converts a template attribute spec. Unlike instance
// attributes, an unknown kind falls back to TEXT so that hand-written sample
// files stay loadable.
func BuildAttributeTemplate(ctx context.Context, reg *LOVRegistry, spec AttributeSpec) (*plm.AttributeTemplate, error) {
	kind := strings.ToUpper(spec.Type)

	if kind == plm.AttributeLOV {
		if spec.LOVName == "" {
			slog.Warn("skipping LOV template attribute without a lovName", "attribute", spec.Name)
			return nil, nil
		}
		lov, err := reg.Lookup(ctx, spec.LOVName)
		if err != nil {
			return nil, fmt.Errorf("resolve lov %s: %w", spec.LOVName, err)
		}
		if lov == nil {
			slog.Warn("skipping template attribute, list of values not registered",
				"attribute", spec.Name, "lov", spec.LOVName)
			return nil, nil
		}
		return &plm.AttributeTemplate{
			Name:      spec.Name,
			Type:      plm.AttributeLOV,
			Mandatory: spec.Mandatory,
			LOVName:   spec.LOVName,
		}, nil
	}

	switch kind {
	case plm.AttributeBoolean, plm.AttributeText, plm.AttributeNumber, plm.AttributeDate, plm.AttributeURL:
	default:
		kind = plm.AttributeText
	}
	return &plm.AttributeTemplate{Name: spec.Name, Type: kind, Mandatory: spec.Mandatory}, nil
}

// buildAttributes maps a spec list, skipping unresolved entries and
// reporting hard failures per item.
func buildAttributes(ctx context.Context, reg *LOVRegistry, specs []AttributeSpec, rep *Report, ownerID string) []plm.Attribute {
	var attrs []plm.Attribute
	for _, spec := range specs {
		attr, err := BuildAttribute(ctx, reg, spec)
		if err != nil {
			rep.fail("attribute", ownerID+"/"+spec.Name, err)
			continue
		}
		if attr == nil {
			rep.skip("attribute", ownerID+"/"+spec.Name, "unresolved list of values")
			continue
		}
		attrs = append(attrs, *attr)
	}
	return attrs
}

// buildTemplateAttributes maps template attribute specs, skipping entries
// without a name or type.
func buildTemplateAttributes(ctx context.Context, reg *LOVRegistry, specs []AttributeSpec, rep *Report, templateID string) []plm.AttributeTemplate {
	var attrs []plm.AttributeTemplate
	for _, spec := range specs {
		if spec.Name == "" || spec.Type == "" {
			rep.skip("template attribute", templateID+"/"+spec.Name, "missing name or type")
			continue
		}
		attr, err := BuildAttributeTemplate(ctx, reg, spec)
		if err != nil {
			rep.fail("template attribute", templateID+"/"+spec.Name, err)
			continue
		}
		if attr == nil {
			rep.skip("template attribute", templateID+"/"+spec.Name, "unresolved list of values")
			continue
		}
		attrs = append(attrs, *attr)
	}
	return attrs
}
