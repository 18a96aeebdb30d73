package plm

// Attribute kinds understood by the server. LOV values resolve against a
// named list of values that must already exist in the workspace.
const (
	AttributeBoolean = "BOOLEAN"
	AttributeText    = "TEXT"
	AttributeNumber  = "NUMBER"
	AttributeDate    = "DATE"
	AttributeURL     = "URL"
	AttributeLOV     = "LOV"
)

// Attribute is a typed value attached to a document or part iteration.
// Number, date and URL values are carried as opaque strings; the server does
// not validate their format. For LOV attributes Value holds the selected
// index and Items the resolved value list.
type Attribute struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Value   string          `json:"value,omitempty"`
	LOVName string          `json:"lovName,omitempty"`
	Index   int             `json:"index,omitempty"`
	Items   []NameValuePair `json:"items,omitempty"`
}

// AttributeTemplate defines the shape of an attribute on a document or part
// template.
type AttributeTemplate struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Mandatory bool   `json:"mandatory"`
	LOVName   string `json:"lovName,omitempty"`
}

// NameValuePair is one entry of a list of values.
type NameValuePair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ListOfValues is a named, ordered enumeration usable as an attribute domain.
type ListOfValues struct {
	WorkspaceID string          `json:"workspaceId"`
	Name        string          `json:"name"`
	Values      []NameValuePair `json:"values"`
}
