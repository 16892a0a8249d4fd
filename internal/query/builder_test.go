package query

import (
	"testing"

	"github.com/halvard/mnemo/internal/catalog"
)

func TestBuild_BaseQueryPassthrough(t *testing.T) {
	p := &catalog.Preset{Query: "  deck:Vocabulary  "}
	got := Build(p, nil, "", nil)
	if got != "deck:Vocabulary" {
		t.Errorf("got %q, want trimmed base query", got)
	}
}

func TestBuild_ParamDefault(t *testing.T) {
	p := &catalog.Preset{
		Query:  "deck:Vocabulary added:{days}",
		Params: []catalog.ParamSpec{{Name: "days", Type: "number", Default: 7}},
	}
	got := Build(p, nil, "", nil)
	if got != "deck:Vocabulary added:7" {
		t.Errorf("got %q", got)
	}
}

func TestBuild_ParamCallerValueUnquotedNumber(t *testing.T) {
	p := &catalog.Preset{
		Query:  "deck:Vocabulary added:{days}",
		Params: []catalog.ParamSpec{{Name: "days", Type: "number", Default: 7}},
	}
	// JSON numbers arrive as float64.
	got := Build(p, map[string]any{"days": float64(30)}, "", nil)
	if got != "deck:Vocabulary added:30" {
		t.Errorf("got %q", got)
	}
}

func TestBuild_SearchMultipleFields(t *testing.T) {
	p := &catalog.Preset{Query: "deck:Vocabulary", SearchFields: []string{"Front", "Back"}}
	got := Build(p, nil, "hello", nil)
	want := "deck:Vocabulary (Front:*hello* OR Back:*hello*)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuild_SearchSingleFieldNoParens(t *testing.T) {
	p := &catalog.Preset{Query: "deck:Vocabulary", SearchFields: []string{"Front"}}
	got := Build(p, nil, "go", nil)
	want := "deck:Vocabulary Front:*go*"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuild_SearchIgnoredWithoutSearchFields(t *testing.T) {
	p := &catalog.Preset{Query: "deck:Vocabulary"}
	got := Build(p, nil, "hello", nil)
	if got != "deck:Vocabulary" {
		t.Errorf("got %q", got)
	}
}

func TestBuild_TagFilter(t *testing.T) {
	p := &catalog.Preset{Query: "deck:Vocabulary"}

	got := Build(p, nil, "", []string{"verb", "noun"})
	want := "deck:Vocabulary (tag:verb OR tag:noun)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = Build(p, nil, "", []string{"verb"})
	want = "deck:Vocabulary tag:verb"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuild_FixedClauseOrder(t *testing.T) {
	p := &catalog.Preset{
		Query:        "deck:{deck}",
		Params:       []catalog.ParamSpec{{Name: "deck", Type: "string", Default: "Vocabulary"}},
		SearchFields: []string{"Front"},
	}
	got := Build(p, nil, "run", []string{"verb"})
	want := "deck:Vocabulary Front:*run* tag:verb"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuild_FirstOccurrenceOnly(t *testing.T) {
	// Repeated placeholders are rejected by catalog validation; the builder
	// itself substitutes only the first occurrence.
	p := &catalog.Preset{
		Query:  "added:{n} edited:{n}",
		Params: []catalog.ParamSpec{{Name: "n", Type: "number", Default: 1}},
	}
	got := Build(p, nil, "", nil)
	if got != "added:1 edited:{n}" {
		t.Errorf("got %q", got)
	}
}
