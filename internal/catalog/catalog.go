// Package catalog holds the declarative tool configuration: search presets
// and note templates. A catalog is loaded once (built-ins or a YAML file),
// validated, and then immutable; every callable tool the server exposes is
// projected from one of its entries.
package catalog

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/mnemo/internal/apperr"
)

// Names of the fixed tools that exist regardless of configuration. Catalog
// entries must not collide with them.
const (
	ToolUpdateTags = "update_tags"
	ToolSync       = "sync"
)

// Reserved keys inside the include selector. They toggle envelope data, not
// note fields, and are never treated as field names.
const (
	IncludeNoteID = "noteId"
	IncludeTags   = "tags"
)

// ParamSpec declares one custom query parameter of a preset. Its placeholder
// ({name}) is substituted into the base query at build time.
type ParamSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // "string" or "number"
	Description string `yaml:"description"`
	Default     any    `yaml:"default"`
}

// Validate validates a parameter declaration.
func (p ParamSpec) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.Required, validation.In("string", "number")),
	)
}

// Preset declares one search-style tool.
type Preset struct {
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description"`
	Query          string      `yaml:"query"` // base query template, may contain {placeholders}
	Model          string      `yaml:"model"`
	Params         []ParamSpec `yaml:"params"`
	DefaultFields  []string    `yaml:"default_fields"`
	OptionalFields []string    `yaml:"optional_fields"`
	SearchFields   []string    `yaml:"search_fields"`
	OptionalTags   bool        `yaml:"optional_tags"`
	AllowedTags    []string    `yaml:"allowed_tags"`
	WithScheduling bool        `yaml:"with_scheduling"`
	DefaultLimit   int         `yaml:"default_limit"`
	DefaultSort    string      `yaml:"default_sort"`
	SortOptions    []string    `yaml:"sort_options"`
}

// Validate validates a preset in isolation.
func (p Preset) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Query, validation.Required),
		validation.Field(&p.DefaultFields, validation.Required),
		validation.Field(&p.DefaultLimit, validation.Min(1)),
	); err != nil {
		return err
	}
	for _, ps := range p.Params {
		if err := ps.Validate(); err != nil {
			return fmt.Errorf("preset %s: param %s: %w", p.Name, ps.Name, err)
		}
		// Single-occurrence substitution: a repeated placeholder would be
		// replaced only once, so reject it outright.
		if strings.Count(p.Query, "{"+ps.Name+"}") > 1 {
			return fmt.Errorf("preset %s: placeholder {%s} repeats in query template", p.Name, ps.Name)
		}
	}
	if p.DefaultSort != "" && !contains(p.SortOptions, p.DefaultSort) {
		return fmt.Errorf("preset %s: default_sort %q not in sort_options", p.Name, p.DefaultSort)
	}
	return nil
}

// FieldSpec declares one field of a note template.
type FieldSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// NoteTemplate declares one note-authoring tool pair: create_<name> and
// list_<name>.
type NoteTemplate struct {
	Name                 string      `yaml:"name"`
	Deck                 string      `yaml:"deck"`
	Model                string      `yaml:"model"`
	Description          string      `yaml:"description"`
	Fields               []FieldSpec `yaml:"fields"`
	AllowedTags          []string    `yaml:"allowed_tags"`
	RejectDuplicateField string      `yaml:"reject_duplicate_field"`
	AutoTag              string      `yaml:"auto_tag"`
}

// Validate validates a note template in isolation.
func (t NoteTemplate) Validate() error {
	if err := validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Deck, validation.Required),
		validation.Field(&t.Model, validation.Required),
		validation.Field(&t.Fields, validation.Required),
	); err != nil {
		return err
	}
	if t.RejectDuplicateField != "" && t.FieldSpec(t.RejectDuplicateField) == nil {
		return fmt.Errorf("template %s: reject_duplicate_field %q is not a declared field", t.Name, t.RejectDuplicateField)
	}
	return nil
}

// FieldSpec returns the declared field with the given name, or nil.
func (t *NoteTemplate) FieldSpec(name string) *FieldSpec {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// PrimaryField is the field surfaced by the list tool: the first required
// field, else the first declared one.
func (t *NoteTemplate) PrimaryField() string {
	for _, f := range t.Fields {
		if f.Required {
			return f.Name
		}
	}
	return t.Fields[0].Name
}

// CreateToolName returns the derived name of the create tool.
func (t *NoteTemplate) CreateToolName() string { return "create_" + t.Name }

// ListToolName returns the derived name of the list tool.
func (t *NoteTemplate) ListToolName() string { return "list_" + t.Name }

// Catalog is the full declarative configuration.
type Catalog struct {
	Presets   []Preset       `yaml:"presets"`
	Templates []NoteTemplate `yaml:"templates"`
}

// Validate checks every entry plus the cross-entry invariants: the final
// tool name set (preset names, derived create/list names, fixed names) must
// be collision-free. A violation here is a startup-fatal misconfiguration.
func (c *Catalog) Validate() error {
	seen := map[string]bool{ToolUpdateTags: true, ToolSync: true}
	claim := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%w: %s", apperr.ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}

	for _, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if err := claim(p.Name); err != nil {
			return err
		}
	}
	for i := range c.Templates {
		t := &c.Templates[i]
		if err := t.Validate(); err != nil {
			return err
		}
		if err := claim(t.CreateToolName()); err != nil {
			return err
		}
		if err := claim(t.ListToolName()); err != nil {
			return err
		}
	}
	return nil
}

// AllowedTagUnion returns the union of every declared tag vocabulary, in
// first-seen order. The fixed tag-mutation tool is constrained to it.
func (c *Catalog) AllowedTagUnion() []string {
	var out []string
	seen := map[string]bool{}
	add := func(tags []string) {
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	for _, p := range c.Presets {
		add(p.AllowedTags)
	}
	for _, t := range c.Templates {
		add(t.AllowedTags)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
