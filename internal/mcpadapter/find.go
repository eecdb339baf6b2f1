// Package mcpadapter exposes metadata search as MCP tools.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/query"
)

// FindInput is the MCP tool input schema for metadata queries.
type FindInput struct {
	Predicate      string   `json:"predicate" jsonschema:"metadata query, e.g. kMDItemFSName == 'report*'"`
	Scopes         []string `json:"scopes,omitempty" jsonschema:"scope constants, e.g. kMDQueryScopeHome; defaults to everything indexed"`
	Attributes     []string `json:"attributes,omitempty" jsonschema:"attribute keys to return; defaults to kMDItemPath"`
	SortAttributes []string `json:"sort_attributes,omitempty" jsonschema:"cascading sort keys; may include kMDItemPath anywhere"`
	MaxResults     int      `json:"max_results,omitempty" jsonschema:"result cap; 0 or negative means no cap"`
}

// FindOutput wraps the result items for structured tool output.
type FindOutput struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
}

// NewFindHandler returns a tool handler backed by the given executor.
// Pass the returned function to mcp.AddTool.
func NewFindHandler(exec *query.Executor) func(context.Context, *mcp.CallToolRequest, FindInput) (*mcp.CallToolResult, FindOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
		return Find(ctx, exec, req, input)
	}
}

// Find runs the metadata query and returns the matched items.
func Find(
	ctx context.Context,
	exec *query.Executor,
	req *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	scopes := make([]engine.Scope, 0, len(input.Scopes))
	for _, s := range input.Scopes {
		scopes = append(scopes, engine.Scope(s))
	}

	items, err := exec.Find(ctx, query.Request{
		Predicate:      input.Predicate,
		Scopes:         scopes,
		Attributes:     input.Attributes,
		SortAttributes: input.SortAttributes,
		MaxResults:     input.MaxResults,
	})
	if err != nil {
		return nil, FindOutput{}, err
	}

	return nil, FindOutput{Items: items, Count: len(items)}, nil
}
