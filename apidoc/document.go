package apidoc

import "github.com/erraggy/oacatalog/internal/maputil"

// PathMap maps URL paths to their operations, in document order.
type PathMap = maputil.Ordered[*MethodMap]

// MethodMap maps HTTP methods ("get", "post", ...) to operations, in document order.
type MethodMap = maputil.Ordered[*Operation]

// Properties maps property names to their definitions, in document order.
// A property declared as null in the source is stored as a nil entry.
type Properties = maputil.Ordered[*Property]

// Example holds a literal example object: field name to scalar value.
type Example = maputil.Ordered[any]

// Document is the subset of an OpenAPI document the catalog is built from.
//
// A Document is read-only once decoded; nothing in this module modifies one.
type Document struct {
	// APIVersion is info.version.
	APIVersion string
	// Paths is the paths object, in document order.
	Paths *PathMap
	// Schemas is components.schemas keyed by the literal schema name.
	Schemas map[string]*SchemaDefinition
}

// Operation is one HTTP method's definition under a path.
type Operation struct {
	Summary     string
	Description string
	Parameters  []Parameter
	// RequestBody is requestBody.content["application/json"], or nil.
	RequestBody *MediaType
}

// Parameter is a URL parameter of an operation.
type Parameter struct {
	Name        string
	Description string
	Required    bool
}

// MediaType is a request body media type entry.
type MediaType struct {
	// Schema is nil when the media type declares no schema.
	Schema *BodySchema
	// Example is nil unless the media type carries an example object.
	Example *Example
}

// BodySchema is a request body schema: inline properties, a $ref, or both.
type BodySchema struct {
	Ref        string
	Properties *Properties
}

// Property describes a single field of a schema.
type Property struct {
	Type        string
	Description string
	// Required is nil when the property does not declare it.
	Required *bool
	Examples []any
}

// SchemaDefinition is a named entry under components.schemas.
type SchemaDefinition struct {
	Required   []string
	Properties *Properties
}

// Stats holds counts describing a decoded Document.
type Stats struct {
	PathCount      int `json:"pathCount"`
	OperationCount int `json:"operationCount"`
	SchemaCount    int `json:"schemaCount"`
}

// Stats returns path, operation and schema counts for the document.
func (d *Document) Stats() Stats {
	if d == nil {
		return Stats{}
	}
	s := Stats{
		PathCount:   d.Paths.Len(),
		SchemaCount: len(d.Schemas),
	}
	for _, methods := range d.Paths.All() {
		s.OperationCount += methods.Len()
	}
	return s
}
