package catalog

// Default returns the built-in catalog used when no catalog file is
// configured: a vocabulary deck with plain search, a scheduling-aware
// review-queue view, a recency view, and one note template.
func Default() *Catalog {
	return &Catalog{
		Presets: []Preset{
			{
				Name:           "find_vocabulary",
				Description:    "Search vocabulary notes by front or back text, with optional tag filtering.",
				Query:          `deck:Vocabulary`,
				Model:          "Basic",
				DefaultFields:  []string{"Front"},
				OptionalFields: []string{"Back", "Example"},
				SearchFields:   []string{"Front", "Back"},
				OptionalTags:   true,
				AllowedTags:    []string{"verb", "noun", "adjective", "phrase"},
				DefaultLimit:   20,
				DefaultSort:    "created_desc",
				SortOptions:    []string{"created_asc", "created_desc", "modified_asc", "modified_desc"},
			},
			{
				Name:           "review_queue",
				Description:    "Cards currently due for review, with scheduling statistics per note.",
				Query:          `deck:Vocabulary is:due`,
				Model:          "Basic",
				DefaultFields:  []string{"Front"},
				OptionalFields: []string{"Back"},
				SearchFields:   []string{"Front"},
				WithScheduling: true,
				DefaultLimit:   20,
				DefaultSort:    "lapses_desc",
				SortOptions:    []string{"lapses_asc", "lapses_desc", "ease_asc", "ease_desc"},
			},
			{
				Name:          "recent_additions",
				Description:   "Notes added within the last N days.",
				Query:         `deck:Vocabulary added:{days}`,
				Model:         "Basic",
				Params:        []ParamSpec{{Name: "days", Type: "number", Description: "Look-back window in days", Default: 7}},
				DefaultFields: []string{"Front", "Back"},
				DefaultLimit:  20,
				DefaultSort:   "created_desc",
				SortOptions:   []string{"created_asc", "created_desc"},
			},
		},
		Templates: []NoteTemplate{
			{
				Name:        "vocabulary",
				Deck:        "Vocabulary",
				Model:       "Basic",
				Description: "A vocabulary flashcard with a word on the front and its meaning on the back.",
				Fields: []FieldSpec{
					{Name: "Front", Description: "The word or expression to learn", Required: true},
					{Name: "Back", Description: "Meaning, translation or definition", Required: true},
					{Name: "Example", Description: "An example sentence using the word"},
				},
				AllowedTags:          []string{"verb", "noun", "adjective", "phrase"},
				RejectDuplicateField: "Front",
				AutoTag:              "mnemo",
			},
		},
	}
}
