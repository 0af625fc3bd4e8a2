package apidoc

import (
	"iter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oacatalog/internal/maputil"
	"github.com/erraggy/oacatalog/oaserrors"
)

// mediaTypeJSON is the only request body media type the catalog reads.
const mediaTypeJSON = "application/json"

// Decode decodes an OpenAPI document from JSON or YAML bytes.
//
// The document is decoded through a yaml.Node tree so that the order of
// paths, methods, properties and example fields matches the source. Only
// the fields listed on [Document] are read; everything else, including
// responses, is ignored.
//
// Decode fails with an [oaserrors.ParseError] when data is not well-formed or
// its root is not an object, and with an [oaserrors.ValidationError] when
// info.version or paths is missing. Any other shape mismatch in optional
// fields is tolerated and the field is treated as absent.
func Decode(data []byte) (*Document, error) {
	return decodeDocument(data, "")
}

func decodeDocument(data []byte, source string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Source: source, Message: "failed to parse JSON/YAML", Cause: err}
	}

	body := resolve(&root)
	if body != nil && body.Kind == yaml.DocumentNode {
		if len(body.Content) == 0 {
			body = nil
		} else {
			body = resolve(body.Content[0])
		}
	}
	if body == nil || body.Kind == 0 {
		return nil, &oaserrors.ParseError{Source: source, Message: "document is empty"}
	}
	if body.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Source:  source,
			Line:    body.Line,
			Column:  body.Column,
			Message: "document root must be an object",
		}
	}

	version, err := decodeAPIVersion(lookup(body, "info"))
	if err != nil {
		return nil, err
	}

	pathsNode := lookup(body, "paths")
	if pathsNode == nil {
		return nil, &oaserrors.ValidationError{Field: "paths", Message: "required field is missing"}
	}
	if pathsNode.Kind != yaml.MappingNode {
		return nil, &oaserrors.ValidationError{Field: "paths", Value: kindName(pathsNode), Message: "expected an object"}
	}

	doc := &Document{
		APIVersion: version,
		Paths:      decodePaths(pathsNode),
		Schemas:    decodeSchemas(lookup(lookup(body, "components"), "schemas")),
	}
	return doc, nil
}

func decodeAPIVersion(info *yaml.Node) (string, error) {
	if info == nil {
		return "", &oaserrors.ValidationError{Field: "info.version", Message: "required field is missing"}
	}
	if info.Kind != yaml.MappingNode {
		return "", &oaserrors.ValidationError{Field: "info", Value: kindName(info), Message: "expected an object"}
	}
	version, ok := scalarString(lookup(info, "version"))
	if !ok {
		return "", &oaserrors.ValidationError{Field: "info.version", Message: "required field is missing"}
	}
	return version, nil
}

func decodePaths(n *yaml.Node) *PathMap {
	paths := maputil.NewOrdered[*MethodMap](len(n.Content) / 2)
	for path, item := range pairs(n) {
		methods := maputil.NewOrdered[*Operation](0)
		for method, op := range pairs(item) {
			methods.Set(method, decodeOperation(op))
		}
		paths.Set(path, methods)
	}
	return paths
}

func decodeOperation(n *yaml.Node) *Operation {
	op := &Operation{}
	if n == nil || n.Kind != yaml.MappingNode {
		return op
	}
	op.Summary, _ = scalarString(lookup(n, "summary"))
	op.Description, _ = scalarString(lookup(n, "description"))

	if params := lookup(n, "parameters"); params != nil && params.Kind == yaml.SequenceNode {
		for _, p := range params.Content {
			p = resolve(p)
			if p == nil || p.Kind != yaml.MappingNode {
				continue
			}
			var param Parameter
			param.Name, _ = scalarString(lookup(p, "name"))
			param.Description, _ = scalarString(lookup(p, "description"))
			param.Required, _ = scalarBool(lookup(p, "required"))
			op.Parameters = append(op.Parameters, param)
		}
	}

	media := lookup(lookup(lookup(n, "requestBody"), "content"), mediaTypeJSON)
	if media != nil && media.Kind == yaml.MappingNode {
		op.RequestBody = decodeMediaType(media)
	}
	return op
}

func decodeMediaType(n *yaml.Node) *MediaType {
	mt := &MediaType{}
	if schema := lookup(n, "schema"); schema != nil && schema.Kind == yaml.MappingNode {
		bs := &BodySchema{}
		bs.Ref, _ = scalarString(lookup(schema, "$ref"))
		bs.Properties = decodeProperties(lookup(schema, "properties"))
		mt.Schema = bs
	}
	if example := lookup(n, "example"); example != nil && example.Kind == yaml.MappingNode {
		values := maputil.NewOrdered[any](len(example.Content) / 2)
		for k, v := range pairs(example) {
			values.Set(k, decodeValue(v))
		}
		mt.Example = values
	}
	return mt
}

func decodeSchemas(n *yaml.Node) map[string]*SchemaDefinition {
	schemas := make(map[string]*SchemaDefinition)
	if n == nil || n.Kind != yaml.MappingNode {
		return schemas
	}
	for name, s := range pairs(n) {
		if s.Kind != yaml.MappingNode {
			schemas[name] = nil
			continue
		}
		def := &SchemaDefinition{Properties: decodeProperties(lookup(s, "properties"))}
		if req := lookup(s, "required"); req != nil && req.Kind == yaml.SequenceNode {
			for _, r := range req.Content {
				if field, ok := scalarString(resolve(r)); ok {
					def.Required = append(def.Required, field)
				}
			}
		}
		schemas[name] = def
	}
	return schemas
}

// decodeProperties returns nil when n is not an object.
func decodeProperties(n *yaml.Node) *Properties {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	props := maputil.NewOrdered[*Property](len(n.Content) / 2)
	for name, p := range pairs(n) {
		if p.Kind != yaml.MappingNode {
			props.Set(name, nil)
			continue
		}
		prop := &Property{}
		prop.Type, _ = scalarString(lookup(p, "type"))
		prop.Description, _ = scalarString(lookup(p, "description"))
		if b, ok := scalarBool(lookup(p, "required")); ok {
			prop.Required = &b
		}
		if ex := lookup(p, "examples"); ex != nil && ex.Kind == yaml.SequenceNode {
			prop.Examples = make([]any, 0, len(ex.Content))
			for _, e := range ex.Content {
				prop.Examples = append(prop.Examples, decodeValue(e))
			}
		}
		props.Set(name, prop)
	}
	return props
}

// resolve follows alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// pairs iterates over the scalar-keyed entries of a mapping node.
// Non-mapping nodes yield nothing.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		n = resolve(n)
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := resolve(n.Content[i])
			if key == nil || key.Kind != yaml.ScalarNode {
				continue
			}
			if !yield(key.Value, resolve(n.Content[i+1])) {
				return
			}
		}
	}
}

// lookup returns the value stored under key in a mapping node, or nil.
// Repeated keys resolve to the last occurrence.
func lookup(n *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	for k, v := range pairs(n) {
		if k == key {
			found = v
		}
	}
	return found
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func scalarString(n *yaml.Node) (string, bool) {
	if isNull(n) || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

func scalarBool(n *yaml.Node) (bool, bool) {
	if isNull(n) || n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

// decodeValue converts a node to its natural Go value: string, int, float64,
// bool, nil, []any or map[string]any.
func decodeValue(n *yaml.Node) any {
	if isNull(n) {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "scalar"
	default:
		return "unknown"
	}
}
