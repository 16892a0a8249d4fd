// Package page implements the sort and pagination stage of the query
// pipeline. Identifier-order sorts operate on raw ID lists before any bulk
// fetch (IDs are assumed ordered by creation time), so only the requested
// page needs fetching; attribute-order sorts run on fetched records.
package page

import (
	"sort"

	"github.com/halvard/mnemo/internal/ankiconnect"
)

// Sort modes.
const (
	SortCreatedAsc   = "created_asc"
	SortCreatedDesc  = "created_desc"
	SortModifiedAsc  = "modified_asc"
	SortModifiedDesc = "modified_desc"
	SortLapsesAsc    = "lapses_asc"
	SortLapsesDesc   = "lapses_desc"
	SortEaseAsc      = "ease_asc"
	SortEaseDesc     = "ease_desc"
)

// Meta is the pagination envelope metadata: the full candidate count before
// slicing, the effective page, and whether further pages exist.
type Meta struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	HasMore bool `json:"hasMore"`
}

// Paginate slices items into the requested page. The effective page is at
// least 1; limit <= 0 returns the whole collection unpaginated.
func Paginate[T any](items []T, limit, pageNum int) ([]T, Meta) {
	total := len(items)
	effective := max(1, pageNum)

	if limit <= 0 {
		return items, Meta{Total: total, Page: effective}
	}

	start := (effective - 1) * limit
	if start >= total {
		return []T{}, Meta{Total: total, Page: effective}
	}
	end := min(start+limit, total)
	return items[start:end], Meta{Total: total, Page: effective, HasMore: end < total}
}

// IsCreatedSort reports whether mode is an identifier-order sort,
// applicable to an ID list before fetching.
func IsCreatedSort(mode string) bool {
	return mode == SortCreatedAsc || mode == SortCreatedDesc
}

// SortIDs orders an identifier list under an identifier-order sort mode.
// Any other mode leaves the input order untouched.
func SortIDs(ids []int64, mode string) {
	switch mode {
	case SortCreatedAsc:
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	case SortCreatedDesc:
		sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	}
}

// SortNotes orders fetched notes under an attribute-order sort mode.
// Identifier-order and unknown modes are no-ops here; callers re-establish
// ID order via ReorderNotes since the fetch API does not preserve it.
func SortNotes(notes []ankiconnect.NoteInfo, mode string) {
	switch mode {
	case SortModifiedAsc:
		sort.SliceStable(notes, func(i, j int) bool { return notes[i].Mod < notes[j].Mod })
	case SortModifiedDesc:
		sort.SliceStable(notes, func(i, j int) bool { return notes[i].Mod > notes[j].Mod })
	}
}

// ReorderNotes returns the fetched notes arranged to match the given ID
// order. IDs with no fetched record are skipped.
func ReorderNotes(notes []ankiconnect.NoteInfo, ids []int64) []ankiconnect.NoteInfo {
	byID := make(map[int64]ankiconnect.NoteInfo, len(notes))
	for _, n := range notes {
		byID[n.NoteID] = n
	}
	out := make([]ankiconnect.NoteInfo, 0, len(notes))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
