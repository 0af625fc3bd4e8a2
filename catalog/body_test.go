package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/erraggy/oacatalog/apidoc"
	"github.com/erraggy/oacatalog/internal/maputil"
)

func bodyRequest(doc *apidoc.Document, media *apidoc.MediaType) BodyRequest {
	return BodyRequest{Document: doc, Media: media, Logger: apidoc.NopLogger{}}
}

func ptr[T any](v T) *T { return &v }

func TestInlineProperties(t *testing.T) {
	props := maputil.NewOrdered[*apidoc.Property](3)
	props.Set("b", &apidoc.Property{Type: "string", Description: "B", Required: ptr(true), Examples: []any{"x"}})
	props.Set("gone", nil)
	props.Set("a", &apidoc.Property{Type: "integer"})
	media := &apidoc.MediaType{Schema: &apidoc.BodySchema{Properties: props}}

	fields := InlineProperties{}.Resolve(bodyRequest(nil, media))
	require.NotNil(t, fields)
	assert.Equal(t, []string{"b", "a"}, fields.Keys())

	b, _ := fields.Get("b")
	assert.Equal(t, Field{Type: "string", Description: "B", Required: ptr(true), Examples: []any{"x"}}, b)
	a, _ := fields.Get("a")
	assert.Nil(t, a.Required, "undeclared required stays undeclared")
	assert.Nil(t, a.Examples)

	assert.Nil(t, InlineProperties{}.Resolve(bodyRequest(nil, &apidoc.MediaType{})))
	empty := &apidoc.MediaType{Schema: &apidoc.BodySchema{Properties: maputil.NewOrdered[*apidoc.Property](0)}}
	assert.Nil(t, InlineProperties{}.Resolve(bodyRequest(nil, empty)))
}

func TestComponentReference(t *testing.T) {
	props := maputil.NewOrdered[*apidoc.Property](3)
	props.Set("symbol", &apidoc.Property{Type: "string", Description: "证券代码", Examples: []any{"02800.HK"}})
	props.Set("legacy", nil)
	props.Set("market", &apidoc.Property{Type: "string", Required: ptr(true)})
	doc := &apidoc.Document{Schemas: map[string]*apidoc.SchemaDefinition{
		"SymbolReq[证券代码请求类]": {Required: []string{"symbol"}, Properties: props},
		"Broken":              nil,
		"Req%2FBody":          {Required: []string{"symbol"}, Properties: props},
	}}

	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"percent-encoded", "#/components/schemas/SymbolReq%5B%E8%AF%81%E5%88%B8%E4%BB%A3%E7%A0%81%E8%AF%B7%E6%B1%82%E7%B1%BB%5D", true},
		{"literal", "#/components/schemas/SymbolReq[证券代码请求类]", true},
		{"bare name", "SymbolReq[证券代码请求类]", true},
		{"missing", "#/components/schemas/Missing", false},
		{"null schema", "#/components/schemas/Broken", false},
		{"malformed escape", "#/components/schemas/Bad%zz", false},
		{"reserved escape stays encoded", "#/components/schemas/Req%2FBody", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media := &apidoc.MediaType{Schema: &apidoc.BodySchema{Ref: tt.ref}}
			fields := ComponentReference{}.Resolve(bodyRequest(doc, media))
			if !tt.want {
				assert.Nil(t, fields)
				return
			}
			require.NotNil(t, fields)
			assert.Equal(t, []string{"symbol", "market"}, fields.Keys())
			symbol, _ := fields.Get("symbol")
			assert.Equal(t, Field{Type: "string", Description: "证券代码", Required: ptr(true), Examples: []any{"02800.HK"}}, symbol)
			market, _ := fields.Get("market")
			assert.Equal(t, ptr(false), market.Required, "required comes from the schema's required list")
		})
	}
}

func TestRefName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"#/components/schemas/Req%5Bx%5D", "Req[x]"},
		{"#/components/schemas/A%2FB", "A%2FB"},
		{"#/components/schemas/a%3ab%2cc%23d", "a%3ab%2cc%23d"},
		{"#/components/schemas/Q%3F%26%3D%2B%24%40%3B", "Q%3F%26%3D%2B%24%40%3B"},
		{"#/components/schemas/Caf%C3%A9%20Req", "Café Req"},
		{"#/components/schemas/Bad%zz", "Bad%zz"},
		{"Plain", "Plain"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, refName(tt.ref, apidoc.NopLogger{}))
		})
	}
}

func TestComponentReference_UnicodeNormalization(t *testing.T) {
	decomposed := norm.NFD.String("Café")
	require.NotEqual(t, "Café", decomposed)

	props := maputil.NewOrdered[*apidoc.Property](1)
	props.Set("id", &apidoc.Property{Type: "string"})
	doc := &apidoc.Document{Schemas: map[string]*apidoc.SchemaDefinition{
		decomposed: {Properties: props},
	}}
	media := &apidoc.MediaType{Schema: &apidoc.BodySchema{Ref: "#/components/schemas/Caf%C3%A9"}}

	assert.Nil(t, ComponentReference{}.Resolve(bodyRequest(doc, media)))
	fields := ComponentReference{NormalizeUnicode: true}.Resolve(bodyRequest(doc, media))
	require.NotNil(t, fields)
	assert.Equal(t, []string{"id"}, fields.Keys())
}

func TestExampleInference(t *testing.T) {
	example := maputil.NewOrdered[any](6)
	example.Set("symbol", "AAPL")
	example.Set("count", 5)
	example.Set("ratio", 0.5)
	example.Set("active", true)
	example.Set("nothing", nil)
	example.Set("tags", []any{"a"})
	example.Set("nested", map[string]any{"k": "v"})
	media := &apidoc.MediaType{Example: example}

	fields := ExampleInference{}.Resolve(bodyRequest(nil, media))
	require.NotNil(t, fields)
	assert.Equal(t, example.Keys(), fields.Keys())

	types := map[string]string{}
	for k, f := range fields.All() {
		types[k] = f.Type
		assert.Empty(t, f.Description)
		assert.Nil(t, f.Required)
		v, _ := example.Get(k)
		assert.Equal(t, []any{v}, f.Examples)
	}
	assert.Equal(t, map[string]string{
		"symbol":  "string",
		"count":   "number",
		"ratio":   "number",
		"active":  "boolean",
		"nothing": "object",
		"tags":    "object",
		"nested":  "object",
	}, types)

	assert.Nil(t, ExampleInference{}.Resolve(bodyRequest(nil, &apidoc.MediaType{})))
}

func TestRequestBody_Precedence(t *testing.T) {
	x := newExtractor(DefaultConfig())
	inline := maputil.NewOrdered[*apidoc.Property](1)
	inline.Set("own", &apidoc.Property{Type: "string"})
	nullOnly := maputil.NewOrdered[*apidoc.Property](1)
	nullOnly.Set("a", nil)
	refProps := maputil.NewOrdered[*apidoc.Property](1)
	refProps.Set("referenced", &apidoc.Property{Type: "string"})
	example := maputil.NewOrdered[any](1)
	example.Set("sample", "x")
	doc := &apidoc.Document{Schemas: map[string]*apidoc.SchemaDefinition{
		"Req":   {Properties: refProps},
		"Empty": {},
	}}

	tests := []struct {
		name       string
		media      *apidoc.MediaType
		wantSource BodySource
		wantKeys   []string
	}{
		{"inline beats reference", &apidoc.MediaType{
			Schema:  &apidoc.BodySchema{Ref: "Req", Properties: inline},
			Example: example,
		}, BodySourceInline, []string{"own"}},
		{"null-only inline properties fall through", &apidoc.MediaType{
			Schema: &apidoc.BodySchema{Ref: "Req", Properties: nullOnly},
		}, BodySourceReference, []string{"referenced"}},
		{"reference beats example", &apidoc.MediaType{
			Schema:  &apidoc.BodySchema{Ref: "Req"},
			Example: example,
		}, BodySourceReference, []string{"referenced"}},
		{"empty reference falls through", &apidoc.MediaType{
			Schema:  &apidoc.BodySchema{Ref: "Empty"},
			Example: example,
		}, BodySourceExample, []string{"sample"}},
		{"nothing usable", &apidoc.MediaType{
			Schema: &apidoc.BodySchema{Ref: "Missing"},
		}, BodySourceNone, nil},
		{"no media", nil, BodySourceNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, source := x.requestBody(doc, tt.media)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantKeys, fields.Keys())
		})
	}
}
