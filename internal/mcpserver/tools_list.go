package mcpserver

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oacatalog/catalog"
)

type listInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OpenAPI document to catalog"`
	ConfigFile string    `json:"config_file,omitempty" jsonschema:"Naming configuration file (YAML or JSON); defaults to OACATALOG_CONFIG"`
	Market     string    `json:"market,omitempty"      jsonschema:"Only APIs in this market (hk, us, hs, usOption, ...); use - for APIs without a market"`
	Method     string    `json:"method,omitempty"      jsonschema:"Only APIs using this HTTP method (case-insensitive)"`
	Name       string    `json:"name,omitempty"        jsonschema:"Glob pattern on the API name, e.g. f10_*"`
	GroupBy    string    `json:"group_by,omitempty"    jsonschema:"Return counts grouped by market, method, or body_source instead of items"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip this many results"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum results to return (default 100)"`
}

type apiSummary struct {
	Name       string `json:"api_name"`
	Method     string `json:"method"`
	Market     string `json:"market,omitempty"`
	Prefix     string `json:"api_prefix"`
	Path       string `json:"api_path"`
	Summary    string `json:"summary,omitempty"`
	BodySource string `json:"body_source"`
}

type listOutput struct {
	Total    int          `json:"total"`
	Matched  int          `json:"matched"`
	Returned int          `json:"returned"`
	APIs     []apiSummary `json:"apis,omitempty"`
	Groups   []groupCount `json:"groups,omitempty"`
}

var listGroupBy = []string{"market", "method", "body_source"}

func handleList(_ context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listOutput, error) {
	if err := validateGroupBy(input.GroupBy, listGroupBy); err != nil {
		return errResult(err), listOutput{}, nil
	}
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), listOutput{}, nil
	}
	e, err := input.Spec.extract(input.ConfigFile)
	if err != nil {
		return errResult(err), listOutput{}, nil
	}

	var matched []*catalog.Descriptor
	for _, d := range e.catalog.API {
		if matchesList(d, input) {
			matched = append(matched, d)
		}
	}
	output := listOutput{Total: len(e.catalog.API), Matched: len(matched)}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(d *catalog.Descriptor) []string {
			switch strings.ToLower(input.GroupBy) {
			case "method":
				return []string{strings.ToLower(d.Method)}
			case "body_source":
				return []string{string(d.BodySource)}
			default:
				return []string{orDash(d.Market)}
			}
		})
		return nil, output, nil
	}

	page := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(page)
	output.APIs = makeSlice[apiSummary](len(page))
	for _, d := range page {
		output.APIs = append(output.APIs, apiSummary{
			Name:       d.Name,
			Method:     d.Method,
			Market:     d.Market,
			Prefix:     d.Prefix,
			Path:       d.Path,
			Summary:    d.Summary,
			BodySource: string(d.BodySource),
		})
	}
	return nil, output, nil
}

func matchesList(d *catalog.Descriptor, input listInput) bool {
	if input.Market != "" && input.Market != orDash(d.Market) {
		return false
	}
	if input.Method != "" && !strings.EqualFold(input.Method, d.Method) {
		return false
	}
	if input.Name != "" {
		if ok, _ := filepath.Match(input.Name, d.Name); !ok {
			return false
		}
	}
	return true
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
