// Package testutil provides a scriptable in-memory backend for tests.
package testutil

import (
	"context"

	"github.com/halvard/mnemo/internal/ankiconnect"
)

// FakeBackend implements the backend surface against in-memory data and
// records every mutation call.
type FakeBackend struct {
	Notes []ankiconnect.NoteInfo
	Cards []ankiconnect.CardInfo

	// FindNotesFn, when set, overrides the default all-notes answer.
	FindNotesFn func(query string) ([]int64, error)

	// Err, when set, fails every call.
	Err error

	Queries         []string
	CreateDeckCalls int
	AddNoteCalls    int
	AddTagsCalls    int
	RemoveTagsCalls int
	SyncCalls       int

	LastDeck   string
	LastModel  string
	LastFields map[string]string
	LastTags   []string

	NextNoteID int64
}

// FindNotes returns the IDs of all stored notes unless FindNotesFn is set.
func (f *FakeBackend) FindNotes(_ context.Context, query string) ([]int64, error) {
	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.FindNotesFn != nil {
		return f.FindNotesFn(query)
	}
	ids := make([]int64, 0, len(f.Notes))
	for _, n := range f.Notes {
		ids = append(ids, n.NoteID)
	}
	return ids, nil
}

// FindCards returns the IDs of all stored cards.
func (f *FakeBackend) FindCards(_ context.Context, query string) ([]int64, error) {
	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	ids := make([]int64, 0, len(f.Cards))
	for _, c := range f.Cards {
		ids = append(ids, c.CardID)
	}
	return ids, nil
}

// NotesInfo returns stored notes matching the requested IDs, in storage
// order regardless of the requested order.
func (f *FakeBackend) NotesInfo(_ context.Context, ids []int64) ([]ankiconnect.NoteInfo, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	want := idSet(ids)
	var out []ankiconnect.NoteInfo
	for _, n := range f.Notes {
		if want[n.NoteID] {
			out = append(out, n)
		}
	}
	return out, nil
}

// CardsInfo returns stored cards matching the requested IDs in storage order.
func (f *FakeBackend) CardsInfo(_ context.Context, ids []int64) ([]ankiconnect.CardInfo, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	want := idSet(ids)
	var out []ankiconnect.CardInfo
	for _, c := range f.Cards {
		if want[c.CardID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// AddNote records the creation and returns the next scripted note ID.
func (f *FakeBackend) AddNote(_ context.Context, deck, model string, fields map[string]string, tags []string) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.AddNoteCalls++
	f.LastDeck, f.LastModel, f.LastFields, f.LastTags = deck, model, fields, tags
	if f.NextNoteID == 0 {
		f.NextNoteID = 1
	}
	return f.NextNoteID, nil
}

// AddTags records the call.
func (f *FakeBackend) AddTags(_ context.Context, ids []int64, tags []string) error {
	if f.Err != nil {
		return f.Err
	}
	f.AddTagsCalls++
	f.LastTags = tags
	return nil
}

// RemoveTags records the call.
func (f *FakeBackend) RemoveTags(_ context.Context, ids []int64, tags []string) error {
	if f.Err != nil {
		return f.Err
	}
	f.RemoveTagsCalls++
	return nil
}

// CreateDeck records the call.
func (f *FakeBackend) CreateDeck(_ context.Context, name string) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.CreateDeckCalls++
	f.LastDeck = name
	return 1, nil
}

// Sync records the call.
func (f *FakeBackend) Sync(_ context.Context) error {
	if f.Err != nil {
		return f.Err
	}
	f.SyncCalls++
	return nil
}

func idSet(ids []int64) map[int64]bool {
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
