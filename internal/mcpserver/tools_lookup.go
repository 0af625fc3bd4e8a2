package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oacatalog/catalog"
)

type lookupInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OpenAPI document to catalog"`
	APIName    string    `json:"api_name"              jsonschema:"API name as it appears in the key list, e.g. etf_list_hk"`
	ConfigFile string    `json:"config_file,omitempty" jsonschema:"Naming configuration file (YAML or JSON); defaults to OACATALOG_CONFIG"`
}

type parameterEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type fieldEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    *bool  `json:"required,omitempty"`
	Examples    []any  `json:"examples,omitempty"`
}

type lookupOutput struct {
	Name        string           `json:"api_name"`
	Summary     string           `json:"summary,omitempty"`
	Description string           `json:"description,omitempty"`
	Market      string           `json:"market,omitempty"`
	Method      string           `json:"method"`
	Prefix      string           `json:"api_prefix"`
	Path        string           `json:"api_path"`
	BodySource  string           `json:"body_source"`
	Parameters  []parameterEntry `json:"parameters,omitempty"`
	RequestBody []fieldEntry     `json:"request_body,omitempty"`
}

// maxSuggestions caps the similar names offered when a lookup misses.
const maxSuggestions = 5

func handleLookup(_ context.Context, _ *mcp.CallToolRequest, input lookupInput) (*mcp.CallToolResult, lookupOutput, error) {
	if input.APIName == "" {
		return errResult(fmt.Errorf("api_name is required")), lookupOutput{}, nil
	}
	e, err := input.Spec.extract(input.ConfigFile)
	if err != nil {
		return errResult(err), lookupOutput{}, nil
	}

	d, ok := e.catalog.Lookup(input.APIName)
	if !ok {
		msg := fmt.Sprintf("api %q not found in %d catalogued APIs", input.APIName, len(e.catalog.API))
		if similar := similarNames(e.catalog, input.APIName); len(similar) > 0 {
			msg += "; similar: " + strings.Join(similar, ", ")
		}
		return errResult(fmt.Errorf("%s", msg)), lookupOutput{}, nil
	}
	return nil, describe(d), nil
}

func describe(d *catalog.Descriptor) lookupOutput {
	out := lookupOutput{
		Name:        d.Name,
		Summary:     d.Summary,
		Description: d.Description,
		Market:      d.Market,
		Method:      d.Method,
		Prefix:      d.Prefix,
		Path:        d.Path,
		BodySource:  string(d.BodySource),
		Parameters:  makeSlice[parameterEntry](d.Parameters.Len()),
		RequestBody: makeSlice[fieldEntry](d.RequestBody.Len()),
	}
	for name, p := range d.Parameters.All() {
		out.Parameters = append(out.Parameters, parameterEntry{Name: name, Description: p.Description, Required: p.Required})
	}
	for name, f := range d.RequestBody.All() {
		out.RequestBody = append(out.RequestBody, fieldEntry{
			Name:        name,
			Type:        f.Type,
			Description: f.Description,
			Required:    f.Required,
			Examples:    f.Examples,
		})
	}
	return out
}

// similarNames returns catalogued names sharing a "_"-separated token with
// name, in catalog order.
func similarNames(cat *catalog.Catalog, name string) []string {
	tokens := strings.Split(strings.ToLower(name), "_")
	var out []string
	seen := make(map[string]bool)
	for _, d := range cat.API {
		if seen[d.Name] {
			continue
		}
		lower := strings.ToLower(d.Name)
		for _, tok := range tokens {
			if tok != "" && strings.Contains(lower, tok) {
				out = append(out, d.Name)
				seen[d.Name] = true
				break
			}
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
