package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oacatalog/internal/maputil"
)

type extractInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OpenAPI document to catalog"`
	ConfigFile string    `json:"config_file,omitempty" jsonschema:"Naming configuration file (YAML or JSON); defaults to OACATALOG_CONFIG"`
	NamesOnly  bool      `json:"names_only,omitempty"  jsonschema:"Return only the API key list instead of the full catalog"`
}

type extractOutput struct {
	APIVersion   string       `json:"api_version"`
	Format       string       `json:"format"`
	PathCount    int          `json:"path_count"`
	APICount     int          `json:"api_count"`
	SkippedPaths int          `json:"skipped_paths"`
	KeyCount     int          `json:"key_count"`
	Markets      []groupCount `json:"markets,omitempty"`
	BodySources  []groupCount `json:"body_sources,omitempty"`
	APIKeyList   []string     `json:"api_key_list,omitempty"`
	Catalog      string       `json:"catalog,omitempty"`
}

func handleExtract(_ context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	e, err := input.Spec.extract(input.ConfigFile)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}
	cat := e.catalog
	stats := cat.Stats()

	output := extractOutput{
		APIVersion:   cat.APIVersion,
		Format:       string(e.format),
		PathCount:    e.stats.PathCount,
		APICount:     stats.APICount,
		SkippedPaths: e.stats.PathCount - stats.APICount,
		KeyCount:     stats.KeyCount,
	}
	for _, m := range maputil.SortedKeys(stats.ByMarket) {
		output.Markets = append(output.Markets, groupCount{Key: orDash(m), Count: stats.ByMarket[m]})
	}
	for _, s := range maputil.SortedKeys(stats.BodySource) {
		output.BodySources = append(output.BodySources, groupCount{Key: string(s), Count: stats.BodySource[s]})
	}

	if input.NamesOnly {
		output.APIKeyList = cat.APIKeyList
		return nil, output, nil
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}
	output.Catalog = string(data)
	return nil, output, nil
}
