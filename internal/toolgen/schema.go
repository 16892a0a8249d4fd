package toolgen

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halvard/mnemo/internal/catalog"
)

// presetTool builds the parameter schema for a search preset.
//
// Shape rules: one optional typed parameter per custom param declaration;
// "search" only when the preset has search-eligible fields; "include" only
// when there is something optional to include; "tags" only with a declared
// tag vocabulary; "sort" only with declared sort modes; "limit" and "page"
// always.
func presetTool(p catalog.Preset) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(p.Description)}

	for _, ps := range p.Params {
		desc := mcp.Description(fmt.Sprintf("%s (default: %v)", ps.Description, ps.Default))
		if ps.Type == "number" {
			popts := []mcp.PropertyOption{desc}
			if d, ok := toFloat(ps.Default); ok {
				popts = append(popts, mcp.DefaultNumber(d))
			}
			opts = append(opts, mcp.WithNumber(ps.Name, popts...))
		} else {
			popts := []mcp.PropertyOption{desc}
			if s, ok := ps.Default.(string); ok {
				popts = append(popts, mcp.DefaultString(s))
			}
			opts = append(opts, mcp.WithString(ps.Name, popts...))
		}
	}

	if len(p.SearchFields) > 0 {
		opts = append(opts, mcp.WithString("search",
			mcp.Description("Substring match across "+strings.Join(p.SearchFields, ", "))))
	}

	if len(p.OptionalFields) > 0 || p.OptionalTags {
		props := map[string]any{
			catalog.IncludeNoteID: boolProp("Include the numeric note identifier"),
		}
		for _, f := range p.OptionalFields {
			props[f] = boolProp("Include the " + f + " field")
		}
		if p.OptionalTags {
			props[catalog.IncludeTags] = boolProp("Include the note's tags")
		}
		opts = append(opts, mcp.WithObject("include",
			mcp.Description("Optional output toggles"),
			mcp.Properties(props)))
	}

	if len(p.AllowedTags) > 0 {
		opts = append(opts, mcp.WithArray("tags",
			mcp.Description("Filter to notes carrying any of these tags"),
			mcp.Items(map[string]any{"type": "string", "enum": p.AllowedTags})))
	}

	if len(p.SortOptions) > 0 {
		opts = append(opts, mcp.WithString("sort",
			mcp.Description("Sort mode (default: "+p.DefaultSort+")"),
			mcp.Enum(p.SortOptions...)))
	}

	opts = append(opts,
		mcp.WithNumber("limit",
			mcp.Description("Maximum results per page"),
			mcp.DefaultNumber(float64(p.DefaultLimit))),
		mcp.WithNumber("page",
			mcp.Description("Page number, 1-based"),
			mcp.DefaultNumber(1)),
	)

	return mcp.NewTool(p.Name, opts...)
}

// createTool builds the schema for a template's create tool: one string
// parameter per declared field.
func createTool(t catalog.NoteTemplate) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, f := range t.Fields {
		popts := []mcp.PropertyOption{mcp.Description(f.Description)}
		if f.Required {
			popts = append(popts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(f.Name, popts...))
	}
	return mcp.NewTool(t.CreateToolName(), opts...)
}

// listTool builds the schema for a template's list tool. It takes no
// parameters.
func listTool(t catalog.NoteTemplate) mcp.Tool {
	return mcp.NewTool(t.ListToolName(),
		mcp.WithDescription(fmt.Sprintf("List the %s of every %s note.", t.PrimaryField(), t.Name)))
}

// updateTagsTool builds the fixed tag-mutation tool. Tag values are
// constrained to the union of declared vocabularies when one exists.
func updateTagsTool(allowed []string) mcp.Tool {
	tagItems := map[string]any{"type": "string"}
	if len(allowed) > 0 {
		tagItems["enum"] = allowed
	}
	return mcp.NewTool(catalog.ToolUpdateTags,
		mcp.WithDescription("Add and/or remove tags on notes by ID."),
		mcp.WithArray("noteIds",
			mcp.Required(),
			mcp.Description("Note identifiers to modify"),
			mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("add",
			mcp.Description("Tags to add"),
			mcp.Items(tagItems)),
		mcp.WithArray("remove",
			mcp.Description("Tags to remove"),
			mcp.Items(tagItems)),
	)
}

// syncTool builds the fixed sync-trigger tool.
func syncTool() mcp.Tool {
	return mcp.NewTool(catalog.ToolSync,
		mcp.WithDescription("Trigger a collection sync with the remote server."))
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
