// Package result shapes raw backend records into the compact objects
// returned to callers: field values are HTML-cleaned, default fields always
// surface, and everything else is opt-in via the include selector.
package result

import (
	"regexp"
	"strings"

	"github.com/halvard/mnemo/internal/ankiconnect"
	"github.com/halvard/mnemo/internal/catalog"
)

// Compact is the caller-visible record shape. Keys are field names plus the
// reserved noteId/tags entries and, for scheduling-aware results, the
// scheduling statistics.
type Compact map[string]any

var (
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
)

// Clean strips markup from a field value: HTML comments are removed
// entirely, tags are stripped, the &nbsp; entity becomes a space, and the
// result is trimmed.
func Clean(s string) string {
	s = commentRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(s)
}

// Project builds a Compact from a record's fields and tags.
//
// Default fields are always emitted, degrading to "" when the source field
// is missing. The include selector adds the note ID, the tag list
// (uncleaned), and any extra field it names truthily; its reserved keys are
// never treated as field names, and keys naming no field are skipped.
// Projection never fails.
func Project(noteID int64, fields map[string]ankiconnect.FieldValue, tags []string, defaultFields []string, include map[string]bool) Compact {
	out := Compact{}

	if include[catalog.IncludeNoteID] {
		out[catalog.IncludeNoteID] = noteID
	}

	for _, name := range defaultFields {
		out[name] = Clean(fields[name].Value)
	}

	for name, want := range include {
		if !want || name == catalog.IncludeNoteID || name == catalog.IncludeTags {
			continue
		}
		fv, ok := fields[name]
		if !ok {
			continue
		}
		out[name] = Clean(fv.Value)
	}

	if include[catalog.IncludeTags] {
		out[catalog.IncludeTags] = tags
	}

	return out
}
