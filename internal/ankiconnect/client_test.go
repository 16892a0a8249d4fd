package ankiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halvard/mnemo/internal/apperr"
)

type recorded struct {
	Action  string         `json:"action"`
	Version int            `json:"version"`
	Params  map[string]any `json:"params"`
}

// protocolServer answers every action from the results map and records
// each request envelope.
func protocolServer(t *testing.T, results map[string]any) (*Client, *[]recorded) {
	t.Helper()
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recorded
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		reqs = append(reqs, req)

		res, ok := results[req.Action]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": "unsupported action"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": res, "error": nil})
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, 6), &reqs
}

func TestFindNotes(t *testing.T) {
	c, reqs := protocolServer(t, map[string]any{"findNotes": []int64{1, 2, 3}})

	ids, err := c.FindNotes(context.Background(), "deck:Words")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != 1 {
		t.Errorf("ids = %v", ids)
	}

	r := (*reqs)[0]
	if r.Action != "findNotes" || r.Version != 6 {
		t.Errorf("envelope = %+v", r)
	}
	if r.Params["query"] != "deck:Words" {
		t.Errorf("params = %v", r.Params)
	}
}

func TestNotesInfo(t *testing.T) {
	c, _ := protocolServer(t, map[string]any{"notesInfo": []map[string]any{{
		"noteId": 7,
		"fields": map[string]any{"Front": map[string]any{"value": "hi", "order": 0}},
		"tags":   []string{"noun"},
		"mod":    1234,
	}}})

	notes, err := c.NotesInfo(context.Background(), []int64{7})
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].NoteID != 7 || notes[0].Fields["Front"].Value != "hi" {
		t.Errorf("notes = %+v", notes)
	}
}

func TestAddNote(t *testing.T) {
	c, reqs := protocolServer(t, map[string]any{"createDeck": 1, "addNote": 42})

	if _, err := c.CreateDeck(context.Background(), "Words"); err != nil {
		t.Fatal(err)
	}
	id, err := c.AddNote(context.Background(), "Words", "Basic",
		map[string]string{"Front": "hola"}, []string{"mnemo"})
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Errorf("id = %d", id)
	}

	noteParams := (*reqs)[1].Params["note"].(map[string]any)
	if noteParams["deckName"] != "Words" || noteParams["modelName"] != "Basic" {
		t.Errorf("note params = %v", noteParams)
	}
}

func TestAddTags_SpaceJoined(t *testing.T) {
	c, reqs := protocolServer(t, map[string]any{"addTags": nil})

	if err := c.AddTags(context.Background(), []int64{1, 2}, []string{"verb", "noun"}); err != nil {
		t.Fatal(err)
	}
	if (*reqs)[0].Params["tags"] != "verb noun" {
		t.Errorf("tags = %v, want space-joined", (*reqs)[0].Params["tags"])
	}
}

func TestErrorEnvelopePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": nil, "error": "collection is not available"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 6)
	_, err := c.FindNotes(context.Background(), "deck:X")
	if !errors.Is(err, apperr.ErrBackend) {
		t.Fatalf("err = %v, want backend error", err)
	}
}

func TestNonOKStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 6)
	if err := c.Sync(context.Background()); !errors.Is(err, apperr.ErrBackend) {
		t.Fatalf("err = %v", err)
	}
}
