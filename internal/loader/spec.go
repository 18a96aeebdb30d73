// Package loader populates a PLM workspace from a JSON sample description.
//
// The sample file has three top-level keys: "LOV" (lists of values), "DOC"
// (folders, document templates and documents) and "PART" (part templates,
// parts, assemblies and products). Loading is a best-effort batch: malformed
// or failing items are logged and recorded in a Report while the rest of the
// batch continues. Only setup-level failures abort a load.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// SampleSpec is the root of a sample data file.
type SampleSpec struct {
	LOVs      []LOVSpec     `json:"LOV"`
	Documents *DocumentSpec `json:"DOC"`
	Products  *ProductSpec  `json:"PART"`
}

// LOVSpec describes one list of values.
type LOVSpec struct {
	Name   string         `json:"lovName"`
	Values []LOVValueSpec `json:"possibleValues"`
}

// LOVValueSpec is one (name, value) pair of a list of values.
type LOVValueSpec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AttributeSpec describes one attribute instance or template attribute. The
// raw value is coerced lazily because its JSON type depends on the attribute
// kind.
type AttributeSpec struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value,omitempty"`
	Mandatory bool            `json:"mandatory,omitempty"`
	LOVName   string          `json:"lovName,omitempty"`
}

// StringValue renders the raw value as a string: JSON strings are unquoted,
// everything else is passed through as its literal JSON text. Numbers and
// dates are deliberately not validated; the server treats them as opaque.
func (a AttributeSpec) StringValue() string {
	if len(a.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.Value, &s); err == nil {
		return s
	}
	return string(a.Value)
}

// BoolValue renders the raw value as a bool, defaulting to false.
func (a AttributeSpec) BoolValue() bool {
	var b bool
	if err := json.Unmarshal(a.Value, &b); err != nil {
		return false
	}
	return b
}

// IndexValue renders the raw value as a list-of-values index.
func (a AttributeSpec) IndexValue() (int, error) {
	var idx int
	if err := json.Unmarshal(a.Value, &idx); err == nil {
		return idx, nil
	}
	// Tolerate a quoted index.
	var s string
	if err := json.Unmarshal(a.Value, &s); err == nil {
		return strconv.Atoi(s)
	}
	return 0, fmt.Errorf("attribute %s: value %s is not an index", a.Name, string(a.Value))
}

// TemplateSpec describes one document or part template.
type TemplateSpec struct {
	ID               string          `json:"id"`
	Type             string          `json:"type,omitempty"`
	Mask             string          `json:"mask,omitempty"`
	AttributesLocked bool            `json:"attributesLocked,omitempty"`
	IDGeneration     bool            `json:"idGeneration,omitempty"`
	Attributes       []AttributeSpec `json:"attributes,omitempty"`
}

// DocumentLinkSpec references another document by id.
type DocumentLinkSpec struct {
	DocumentID string `json:"docId"`
	Comment    string `json:"comment,omitempty"`
}

// DocumentItemSpec describes one document to create.
type DocumentItemSpec struct {
	Folder      string             `json:"folder,omitempty"`
	ID          string             `json:"docID"`
	Title       string             `json:"docTitle,omitempty"`
	Description string             `json:"docDescription,omitempty"`
	Template    string             `json:"docTemplate,omitempty"`
	Links       []DocumentLinkSpec `json:"documentLinks,omitempty"`
	Attributes  []AttributeSpec    `json:"attributes,omitempty"`
}

// DocumentSpec is the "DOC" section of a sample file.
type DocumentSpec struct {
	Folders   []string           `json:"folders,omitempty"`
	Templates []TemplateSpec     `json:"templates,omitempty"`
	Documents []DocumentItemSpec `json:"documents,omitempty"`
}

// CADInstanceSpec is one 3D placement.
type CADInstanceSpec struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
	RZ float64 `json:"rz"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
	TZ float64 `json:"tz"`
}

// SubstituteSpec is an alternate component for an assembly position.
type SubstituteSpec struct {
	PartNumber   string            `json:"partNumber"`
	Amount       float64           `json:"amount"`
	Unit         string            `json:"unit,omitempty"`
	CADInstances []CADInstanceSpec `json:"cadInstances,omitempty"`
}

// AssemblyPartSpec is one usage link of an assembly.
type AssemblyPartSpec struct {
	PartNumber   string            `json:"partNumber"`
	Optional     bool              `json:"optional,omitempty"`
	Amount       float64           `json:"amount"`
	Unit         string            `json:"unit,omitempty"`
	CADInstances []CADInstanceSpec `json:"cadInstances,omitempty"`
	Substitutes  []SubstituteSpec  `json:"substitute,omitempty"`
}

// AssemblySpec builds a product structure under a root part.
type AssemblySpec struct {
	RootPartNumber string             `json:"partNumber"`
	Parts          []AssemblyPartSpec `json:"parts,omitempty"`
}

// PartItemSpec describes one part to create.
type PartItemSpec struct {
	Number       string             `json:"partNumber"`
	Name         string             `json:"partName,omitempty"`
	Description  string             `json:"partDescription,omitempty"`
	StandardPart bool               `json:"isStandardPart,omitempty"`
	Template     string             `json:"partTemplate,omitempty"`
	Links        []DocumentLinkSpec `json:"documentLinks,omitempty"`
	Attributes   []AttributeSpec    `json:"attributes,omitempty"`
}

// ProductItemSpec binds a product name to a root part.
type ProductItemSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	RootPart    string `json:"rootPart"`
}

// ProductSpec is the "PART" section of a sample file.
type ProductSpec struct {
	Templates  []TemplateSpec    `json:"templates,omitempty"`
	Parts      []PartItemSpec    `json:"parts,omitempty"`
	Assemblies []AssemblySpec    `json:"assembly,omitempty"`
	Products   []ProductItemSpec `json:"products,omitempty"`
}

// ParseSampleFile reads and decodes a sample data file.
func ParseSampleFile(path string) (*SampleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sample file: %w", err)
	}
	return ParseSample(data)
}

// ParseSample decodes sample data from raw JSON.
func ParseSample(data []byte) (*SampleSpec, error) {
	var spec SampleSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse sample data: %w", err)
	}
	return &spec, nil
}
