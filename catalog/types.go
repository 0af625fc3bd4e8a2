package catalog

import "github.com/erraggy/oacatalog/internal/maputil"

// BodySource records which strategy produced a descriptor's request body.
type BodySource string

const (
	// BodySourceInline means the schema's own properties were used.
	BodySourceInline BodySource = "inline"
	// BodySourceReference means the fields came from a components schema.
	BodySourceReference BodySource = "reference"
	// BodySourceExample means the fields were inferred from an example object.
	BodySourceExample BodySource = "example"
	// BodySourceNone means no strategy produced fields.
	BodySourceNone BodySource = "none"
)

// Parameters maps parameter names to their descriptors, in declaration order.
type Parameters = maputil.Ordered[Parameter]

// Fields maps body field names to their descriptors, in declaration order.
type Fields = maputil.Ordered[Field]

// Catalog is the extraction result for one document.
type Catalog struct {
	// API holds one descriptor per catalogued path, in path order.
	API []*Descriptor `json:"api" yaml:"api"`
	// APIVersion is the document's info.version.
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`
	// APIKeyList is the configured seed names followed by every API name.
	APIKeyList []string `json:"apiKeyList" yaml:"apiKeyList"`
}

// Descriptor describes a single API endpoint.
type Descriptor struct {
	Name        string      `json:"apiName" yaml:"apiName"`
	Summary     string      `json:"summary" yaml:"summary"`
	Description string      `json:"description" yaml:"description"`
	Market      string      `json:"market" yaml:"market"`
	Method      string      `json:"method" yaml:"method"`
	Prefix      string      `json:"apiPrefix" yaml:"apiPrefix"`
	Path        string      `json:"apiPath" yaml:"apiPath"`
	Parameters  *Parameters `json:"parameters" yaml:"parameters"`
	RequestBody *Fields     `json:"requestBody" yaml:"requestBody"`
	// Response is always empty; response schemas are not catalogued.
	Response *Fields `json:"response" yaml:"response"`

	// BodySource is diagnostic only and never serialized.
	BodySource BodySource `json:"-" yaml:"-"`
}

// Parameter describes a URL parameter.
type Parameter struct {
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// Field describes a request body field.
type Field struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	// Required is omitted when the source does not declare it.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`
	Examples []any `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Lookup returns the descriptor named name. When names repeat, the first
// descriptor wins.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	if c == nil {
		return nil, false
	}
	for _, d := range c.API {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Stats summarises a catalog.
type Stats struct {
	APICount   int                `json:"apiCount"`
	KeyCount   int                `json:"keyCount"`
	ByMarket   map[string]int     `json:"byMarket"`
	BodySource map[BodySource]int `json:"bodySource"`
}

// Stats counts descriptors per market and per body source. Descriptors with no
// market are counted under the empty string.
func (c *Catalog) Stats() Stats {
	s := Stats{
		ByMarket:   make(map[string]int),
		BodySource: make(map[BodySource]int),
	}
	if c == nil {
		return s
	}
	s.APICount = len(c.API)
	s.KeyCount = len(c.APIKeyList)
	for _, d := range c.API {
		s.ByMarket[d.Market]++
		s.BodySource[d.BodySource]++
	}
	return s
}
