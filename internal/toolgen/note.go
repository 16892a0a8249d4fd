package toolgen

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/mnemo/internal/catalog"
	"github.com/halvard/mnemo/internal/result"
)

// createHandler builds the handler for a template's create tool.
//
// When the template names a reject-duplicate field, an existing note with
// the same value anywhere in the collection turns the call into a
// structured negative response with zero mutation calls. Otherwise exactly
// one deck-create (idempotent on the backend) and one note-create occur.
func (g *Generator) createHandler(t catalog.NoteTemplate) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		fields := make(map[string]string, len(t.Fields))
		for _, f := range t.Fields {
			if f.Required {
				v, err := req.RequireString(f.Name)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				fields[f.Name] = v
			} else {
				fields[f.Name] = req.GetString(f.Name, "")
			}
		}

		if t.RejectDuplicateField != "" {
			if v := fields[t.RejectDuplicateField]; v != "" {
				ids, err := g.backend.FindNotes(ctx, fmt.Sprintf("%s:\"%s\"", t.RejectDuplicateField, v))
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				if len(ids) > 0 {
					return jsonResult(map[string]any{
						"success":         false,
						"reason":          fmt.Sprintf("a note with the same %s already exists", t.RejectDuplicateField),
						"existingNoteIds": ids,
					})
				}
			}
		}

		if _, err := g.backend.CreateDeck(ctx, t.Deck); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tags := []string{}
		if t.AutoTag != "" {
			tags = append(tags, t.AutoTag)
		}

		id, err := g.backend.AddNote(ctx, t.Deck, t.Model, fields, tags)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp := map[string]any{
			"success": true,
			"noteId":  id,
			"tags":    tags,
		}
		for _, f := range t.Fields {
			if v, ok := args[f.Name]; ok {
				resp[f.Name] = v
			}
		}
		return jsonResult(resp)
	}
}

// listHandler builds the handler for a template's list tool: the cleaned
// primary-field value of every note in the template's deck, in backend
// fetch order.
func (g *Generator) listHandler(t catalog.NoteTemplate) server.ToolHandlerFunc {
	primary := t.PrimaryField()
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.gate.MaybeSync(ctx)

		ids, err := g.backend.FindNotes(ctx, fmt.Sprintf("deck:\"%s\"", t.Deck))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		notes, err := g.fetchNotes(ctx, ids)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		values := make([]string, 0, len(notes))
		for _, n := range notes {
			values = append(values, result.Clean(n.Fields[primary].Value))
		}
		return jsonResult(values)
	}
}
