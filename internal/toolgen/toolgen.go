// Package toolgen walks the declarative catalog and materializes the tool
// fleet: one search tool per preset, a create/list pair per note template,
// and the fixed utility tools. Each tool is a (schema, handler) pair built
// once at generation time; handlers close over their catalog entry and
// compose the query, fetch, projection and pagination stages.
package toolgen

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/mnemo/internal/ankiconnect"
	"github.com/halvard/mnemo/internal/catalog"
	"github.com/halvard/mnemo/internal/syncgate"
)

// Backend is the full backend surface the generated handlers need.
type Backend interface {
	FindNotes(ctx context.Context, query string) ([]int64, error)
	FindCards(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.NoteInfo, error)
	CardsInfo(ctx context.Context, ids []int64) ([]ankiconnect.CardInfo, error)
	AddNote(ctx context.Context, deck, model string, fields map[string]string, tags []string) (int64, error)
	AddTags(ctx context.Context, ids []int64, tags []string) error
	RemoveTags(ctx context.Context, ids []int64, tags []string) error
	CreateDeck(ctx context.Context, name string) (int64, error)
	Sync(ctx context.Context) error
}

// Generator produces tools from one immutable catalog.
type Generator struct {
	cat     *catalog.Catalog
	backend Backend
	gate    *syncgate.Gate
}

// New creates a generator. The catalog must already be validated.
func New(cat *catalog.Catalog, backend Backend, gate *syncgate.Gate) *Generator {
	return &Generator{cat: cat, backend: backend, gate: gate}
}

// Tools returns the full generated tool fleet in catalog order, fixed tools
// last.
func (g *Generator) Tools() []server.ServerTool {
	var tools []server.ServerTool
	for _, p := range g.cat.Presets {
		tools = append(tools, server.ServerTool{Tool: presetTool(p), Handler: g.presetHandler(p)})
	}
	for _, t := range g.cat.Templates {
		tools = append(tools,
			server.ServerTool{Tool: createTool(t), Handler: g.createHandler(t)},
			server.ServerTool{Tool: listTool(t), Handler: g.listHandler(t)},
		)
	}
	tools = append(tools,
		server.ServerTool{Tool: updateTagsTool(g.cat.AllowedTagUnion()), Handler: g.updateTagsHandler()},
		server.ServerTool{Tool: syncTool(), Handler: g.syncHandler()},
	)
	return tools
}

// jsonResult wraps a response payload as pretty-printed JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// includeSelector extracts the caller's include object as a set of enabled
// toggles. Non-boolean and false values are dropped.
func includeSelector(args map[string]any) map[string]bool {
	raw, _ := args["include"].(map[string]any)
	if raw == nil {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		if b, ok := v.(bool); ok && b {
			out[k] = true
		}
	}
	return out
}

// int64Slice coerces a JSON array argument into identifiers.
func int64Slice(v any) []int64 {
	raw, _ := v.([]any)
	out := make([]int64, 0, len(raw))
	for _, e := range raw {
		switch n := e.(type) {
		case float64:
			out = append(out, int64(n))
		case int:
			out = append(out, int64(n))
		case int64:
			out = append(out, n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				out = append(out, i)
			}
		}
	}
	return out
}
