// Package query assembles backend query strings from a preset and caller
// arguments. The backend grammar is whitespace-conjunctive: space-separated
// clauses are implicitly ANDed, so assembly is fixed-order string
// concatenation with one-space separation.
package query

import (
	"fmt"
	"strings"

	"github.com/halvard/mnemo/internal/catalog"
)

// Build produces the final backend query for a preset.
//
// Order is fixed: base template with placeholders substituted, then the
// search expansion over the preset's search fields, then the tag filter.
// Each declared placeholder is substituted once — first occurrence only;
// catalog validation rejects templates that repeat one.
func Build(p *catalog.Preset, params map[string]any, search string, tags []string) string {
	q := p.Query

	for _, ps := range p.Params {
		v, ok := params[ps.Name]
		if !ok || v == nil {
			v = ps.Default
		}
		if v == nil {
			continue
		}
		q = strings.Replace(q, "{"+ps.Name+"}", render(v), 1)
	}

	if search != "" && len(p.SearchFields) > 0 {
		clauses := make([]string, len(p.SearchFields))
		for i, f := range p.SearchFields {
			clauses[i] = fmt.Sprintf("%s:*%s*", f, search)
		}
		q += " " + group(clauses)
	}

	if len(tags) > 0 {
		clauses := make([]string, len(tags))
		for i, t := range tags {
			clauses[i] = "tag:" + t
		}
		q += " " + group(clauses)
	}

	return strings.TrimSpace(q)
}

// group ORs multiple clauses together, parenthesizing only when needed.
func group(clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// render formats a parameter value in its natural string form: numbers
// unquoted, whole numbers without a decimal point.
func render(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%v", n)
	case float32:
		return render(float64(n))
	default:
		return fmt.Sprintf("%v", v)
	}
}
