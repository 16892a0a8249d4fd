package toolgen

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halvard/mnemo/internal/ankiconnect"
	"github.com/halvard/mnemo/internal/catalog"
	"github.com/halvard/mnemo/internal/page"
	"github.com/halvard/mnemo/internal/query"
	"github.com/halvard/mnemo/internal/result"
	"github.com/halvard/mnemo/internal/review"
)

// searchEnvelope is the response shape of every search-style tool.
type searchEnvelope struct {
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	HasMore bool             `json:"hasMore"`
	Notes   []result.Compact `json:"notes"`
}

// presetHandler builds the request handler for one search preset.
func (g *Generator) presetHandler(p catalog.Preset) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		custom := make(map[string]any, len(p.Params))
		for _, ps := range p.Params {
			if v, ok := args[ps.Name]; ok {
				custom[ps.Name] = v
			}
		}

		q := query.Build(&p, custom, req.GetString("search", ""), req.GetStringSlice("tags", nil))
		limit := req.GetInt("limit", p.DefaultLimit)
		pageNum := req.GetInt("page", 1)
		mode := req.GetString("sort", p.DefaultSort)
		include := includeSelector(args)

		g.gate.MaybeSync(ctx)

		var (
			notes []result.Compact
			meta  page.Meta
			err   error
		)
		if p.WithScheduling {
			notes, meta, err = review.Aggregate(ctx, g.backend, q, p.DefaultFields, limit, pageNum, include, mode)
		} else {
			notes, meta, err = g.searchNotes(ctx, q, p.DefaultFields, limit, pageNum, include, mode)
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return jsonResult(searchEnvelope{
			Total:   meta.Total,
			Page:    meta.Page,
			HasMore: meta.HasMore,
			Notes:   notes,
		})
	}
}

// searchNotes runs the plain (non-scheduling) pipeline.
//
// Identifier-order and unknown sorts are resolved on the raw ID list, so
// only the requested page is bulk-fetched. Modified-time sorts need the
// full record set before slicing.
func (g *Generator) searchNotes(ctx context.Context, q string, defaultFields []string, limit, pageNum int, include map[string]bool, mode string) ([]result.Compact, page.Meta, error) {
	ids, err := g.backend.FindNotes(ctx, q)
	if err != nil {
		return nil, page.Meta{}, err
	}

	if mode != page.SortModifiedAsc && mode != page.SortModifiedDesc {
		page.SortIDs(ids, mode)
		pageIDs, meta := page.Paginate(ids, limit, pageNum)
		notes, err := g.fetchNotes(ctx, pageIDs)
		if err != nil {
			return nil, page.Meta{}, err
		}
		// The fetch API is not order-preserving.
		notes = page.ReorderNotes(notes, pageIDs)
		return projectAll(notes, defaultFields, include), meta, nil
	}

	notes, err := g.fetchNotes(ctx, ids)
	if err != nil {
		return nil, page.Meta{}, err
	}
	notes = page.ReorderNotes(notes, ids)
	page.SortNotes(notes, mode)
	slice, meta := page.Paginate(notes, limit, pageNum)
	return projectAll(slice, defaultFields, include), meta, nil
}

// fetchNotes bulk-fetches note records, skipping the backend round trip for
// an empty ID list.
func (g *Generator) fetchNotes(ctx context.Context, ids []int64) ([]ankiconnect.NoteInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return g.backend.NotesInfo(ctx, ids)
}

func projectAll(notes []ankiconnect.NoteInfo, defaultFields []string, include map[string]bool) []result.Compact {
	out := make([]result.Compact, 0, len(notes))
	for _, n := range notes {
		out = append(out, result.Project(n.NoteID, n.Fields, n.Tags, defaultFields, include))
	}
	return out
}
