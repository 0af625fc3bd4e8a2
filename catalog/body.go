package catalog

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/internal/maputil"
)

// BodyRequest is the input handed to each BodyResolver.
type BodyRequest struct {
	// Document is the source document, for resolving references.
	Document *apidoc.Document
	// Media is the operation's application/json request body. Never nil.
	Media *apidoc.MediaType
	// Logger receives debug-level notes about recovered anomalies.
	Logger apidoc.Logger
}

// BodyResolver is one strategy for deriving request body fields.
//
// Resolvers are tried in order; the first to return a non-empty Fields wins.
// Resolve must not modify the request's document.
type BodyResolver interface {
	// Source identifies the strategy on descriptors it produced.
	Source() BodySource
	// Resolve returns the fields this strategy derives, or nil.
	Resolve(req BodyRequest) *Fields
}

// DefaultBodyResolvers returns inline properties, then component references,
// then example inference.
func DefaultBodyResolvers() []BodyResolver {
	return []BodyResolver{
		InlineProperties{},
		ComponentReference{},
		ExampleInference{},
	}
}

// InlineProperties uses the schema's own properties verbatim.
type InlineProperties struct{}

// Source implements BodyResolver.
func (InlineProperties) Source() BodySource { return BodySourceInline }

// Resolve implements BodyResolver.
func (InlineProperties) Resolve(req BodyRequest) *Fields {
	schema := req.Media.Schema
	if schema == nil || schema.Properties.Len() == 0 {
		return nil
	}
	fields := maputil.NewOrdered[Field](schema.Properties.Len())
	for name, prop := range schema.Properties.All() {
		if prop == nil {
			continue
		}
		fields.Set(name, Field{
			Type:        prop.Type,
			Description: prop.Description,
			Required:    cloneBool(prop.Required),
			Examples:    slices.Clone(prop.Examples),
		})
	}
	return fields
}

// ComponentReference follows the schema's $ref into components.schemas.
//
// The reference's last segment is percent-decoded before lookup, so
// "#/components/schemas/Req%5Bx%5D" finds the schema named "Req[x]". Escapes
// of URI reserved characters (%2F, %3A, %23, ...) stay encoded, so "A%2FB"
// names the schema "A%2FB".
type ComponentReference struct {
	// NormalizeUnicode retries a failed lookup comparing names in Unicode
	// normalization form C.
	NormalizeUnicode bool
}

// Source implements BodyResolver.
func (ComponentReference) Source() BodySource { return BodySourceReference }

// Resolve implements BodyResolver.
func (c ComponentReference) Resolve(req BodyRequest) *Fields {
	schema := req.Media.Schema
	if schema == nil || schema.Ref == "" {
		return nil
	}
	name := refName(schema.Ref, req.Logger)
	def := c.lookup(req.Document, name)
	if def == nil {
		req.Logger.Debug("request body reference not found", "ref", schema.Ref, "schema", name)
		return nil
	}

	required := make(map[string]struct{}, len(def.Required))
	for _, r := range def.Required {
		required[r] = struct{}{}
	}
	fields := maputil.NewOrdered[Field](def.Properties.Len())
	for field, prop := range def.Properties.All() {
		if prop == nil {
			continue
		}
		_, isRequired := required[field]
		fields.Set(field, Field{
			Type:        prop.Type,
			Description: prop.Description,
			Required:    &isRequired,
			Examples:    slices.Clone(prop.Examples),
		})
	}
	return fields
}

func (c ComponentReference) lookup(doc *apidoc.Document, name string) *apidoc.SchemaDefinition {
	if doc == nil {
		return nil
	}
	if def, ok := doc.Schemas[name]; ok {
		return def
	}
	if !c.NormalizeUnicode {
		return nil
	}
	want := norm.NFC.String(name)
	// Sorted so that two names normalizing alike always resolve the same way.
	for _, key := range maputil.SortedKeys(doc.Schemas) {
		if norm.NFC.String(key) == want {
			return doc.Schemas[key]
		}
	}
	return nil
}

// refName returns the percent-decoded last segment of ref. A segment with a
// malformed escape is used as written.
// reservedEscape matches escapes of ; / ? : @ & = + $ , and #, which are
// left undecoded.
var reservedEscape = regexp.MustCompile(`%(?i:2[346BCF]|3[ABDF]|40)`)

func refName(ref string, logger apidoc.Logger) string {
	seg := ref[strings.LastIndexByte(ref, '/')+1:]
	kept := reservedEscape.ReplaceAllStringFunc(seg, func(esc string) string {
		return "%25" + esc[1:]
	})
	decoded, err := url.PathUnescape(kept)
	if err != nil {
		logger.Debug("request body reference is not valid percent-encoding", "ref", ref, "error", err)
		return seg
	}
	return decoded
}

// ExampleInference builds one field per key of the media type's example
// object, typing each by its value.
type ExampleInference struct{}

// Source implements BodyResolver.
func (ExampleInference) Source() BodySource { return BodySourceExample }

// Resolve implements BodyResolver.
func (ExampleInference) Resolve(req BodyRequest) *Fields {
	example := req.Media.Example
	if example.Len() == 0 {
		return nil
	}
	fields := maputil.NewOrdered[Field](example.Len())
	for key, value := range example.All() {
		fields.Set(key, Field{
			Type:     valueType(value),
			Examples: []any{value},
		})
	}
	return fields
}

// valueType names the type of an example value the way a JavaScript typeof
// check would: numbers of any width are "number", and null, arrays and
// objects are all "object".
func valueType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	default:
		return "object"
	}
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
