package toolgen

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// updateTagsHandler builds the fixed tag-mutation handler.
func (g *Generator) updateTagsHandler() server.ToolHandlerFunc {
	allowed := g.cat.AllowedTagUnion()
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := int64Slice(req.GetArguments()["noteIds"])
		if len(ids) == 0 {
			return mcp.NewToolResultError("noteIds is required"), nil
		}

		add := req.GetStringSlice("add", []string{})
		remove := req.GetStringSlice("remove", []string{})

		if len(allowed) > 0 {
			for _, tag := range append(append([]string{}, add...), remove...) {
				if !inVocabulary(allowed, tag) {
					return mcp.NewToolResultError(fmt.Sprintf("tag %q is not in the allowed vocabulary", tag)), nil
				}
			}
		}

		if len(add) > 0 {
			if err := g.backend.AddTags(ctx, ids, add); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		if len(remove) > 0 {
			if err := g.backend.RemoveTags(ctx, ids, remove); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		return jsonResult(map[string]any{
			"success": true,
			"noteIds": ids,
			"added":   add,
			"removed": remove,
		})
	}
}

// syncHandler builds the fixed sync-trigger handler. A forced sync also
// refreshes the staleness gate.
func (g *Generator) syncHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := g.gate.Sync(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"success": true})
	}
}

func inVocabulary(allowed []string, tag string) bool {
	for _, t := range allowed {
		if t == tag {
			return true
		}
	}
	return false
}
