// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes restdoc generation as MCP tools over stdio.
package mcpserver

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restdoc"
)

const serverInstructions = `restdoc MCP server: generates OpenAPI 3 documents from Source Models of annotated REST resource classes.

Configuration: defaults are configurable via RESTDOC_* environment variables set in your MCP client config.

Key settings:
- RESTDOC_COLLISION_STRATEGY (default: accept-left) path collision strategy
- RESTDOC_NAMING_STRATEGY (default: simple) schema naming strategy
- RESTDOC_CONCURRENCY (default: 8) operations bound in parallel
- RESTDOC_VALIDATE (default: true) validate generated documents
- RESTDOC_INSPECT_LIMIT (default: 100) default result limit for inspect
- RESTDOC_CACHE_ENABLED (default: true) disable result caching entirely

Caching: generation results are cached per session, keyed by input and options. File entries use path+mtime (auto-invalidated on change). URL entries use a shorter TTL.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		resultCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "restdoc", Version: restdoc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate an OpenAPI 3.0 document from a Source Model of annotated REST resource classes. Returns document statistics, diagnostics (cycles, binding conflicts, path collisions, unmatched docs, unresolved types) and the document inline as YAML or JSON. Set output_dir to write definition.yml and definition.json instead. The document is validated unless validate=false.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect what a Source Model produces without returning the document. Lists operations (method, path, operationId, tags, source method) with method/path/tag filters and offset/limit pagination, the schema names, and the diagnostics, optionally filtered by kind. Use group_by (tag or method) to get distribution counts instead of individual operations.",
	}, handleInspect)
}

// paginate returns the page of items starting at offset. A non-positive
// limit means cfg.InspectLimit; no page is larger than cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	if limit <= 0 {
		limit = cfg.InspectLimit
	}
	limit = min(limit, cfg.MaxLimit, len(items)-offset)
	return items[offset : offset+limit]
}

// makeSlice returns nil for n == 0 so empty lists are omitted from tool
// output, and an empty slice with capacity n otherwise.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute paths under common filesystem roots.
var pathPattern = regexp.MustCompile(`/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[\w./-]*`)

// sanitizeError renders err for an MCP client with local paths replaced
// by "<path>".
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult reports err as a tool-level failure.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount is one bucket of a group_by result.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort counts items per key, largest bucket first and ties by key.
// An item with several keys counts once in each.
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
	slices.SortFunc(groups, func(a, b groupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return groups
}

// validateGroupBy accepts an empty group_by or one of allowed, ignoring case.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" || slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, groupBy) }) {
		return nil
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
