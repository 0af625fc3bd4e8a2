// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oacatalog capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oacatalog"
)

const serverInstructions = `oacatalog MCP server: derives a flat API catalog (names, markets, parameters, request bodies) from OpenAPI documents.

Configuration: All defaults are configurable via OACATALOG_* environment variables set in your MCP client config.

Key settings:
- OACATALOG_CONFIG: naming configuration file used when a tool call gives no config_file
- OACATALOG_CACHE_SIZE (default: 16): number of extracted catalogs kept per session
- OACATALOG_CACHE_TTL (default: 15m): lifetime of a cached catalog
- OACATALOG_CACHE_ENABLED (default: true): disable caching entirely
- OACATALOG_MAX_INLINE_SIZE (default: 10MiB): limit for inline content
- OACATALOG_LIST_LIMIT (default: 100): default result limit for list_apis

Caching: Catalogs are cached per session. File entries use path+mtime as key (auto-invalidated on change); inline content is keyed by its SHA-256 hash. The naming configuration file is part of every key.

Workflow: call extract_catalog with names_only=true to see what exists, list_apis to filter, then lookup_api for one API's parameters and request body.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oacatalog", Version: oacatalog.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_catalog",
		Description: "Extract the API catalog from an OpenAPI document. Every path with a version segment (v1, v2, ...) becomes one API named from the segments after the version plus its market. Returns counts by market and body source, and the full catalog as JSON. Use names_only=true for large documents to get just the API key list.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup_api",
		Description: "Look up one API by name (e.g. etf_list_hk) and return its method, path, parameters, and request body fields in declaration order. On a miss, similar names are suggested.",
	}, handleLookup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_apis",
		Description: "List catalogued APIs with optional filters on market, method, and name glob (e.g. f10_*). Use group_by (market, method, or body_source) to get distribution counts instead of items. Default limit is configurable via OACATALOG_LIST_LIMIT.",
	}, handleList)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is empty or one of allowed.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}
