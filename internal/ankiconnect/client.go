// Package ankiconnect implements a thin client for the AnkiConnect HTTP
// protocol: every operation is a single POST carrying {action, version,
// params} and receiving {result, error}. The client holds no policy — it
// translates typed calls to wire requests and propagates backend errors
// verbatim.
package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/halvard/mnemo/internal/apperr"
)

// Client talks to an AnkiConnect endpoint.
type Client struct {
	url     string
	version int
	http    *http.Client
}

// New creates a client for the given endpoint URL and protocol version.
func New(url string, version int) *Client {
	return &Client{url: url, version: version, http: &http.Client{}}
}

type envelope struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type reply struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one request/response exchange. Each call is attempted
// exactly once; callers needing resilience retry the whole tool call.
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(envelope{Action: action, Version: c.version, Params: params})
	if err != nil {
		return fmt.Errorf("%s: marshal params: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", action, apperr.ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %w: status %d", action, apperr.ErrBackend, resp.StatusCode)
	}

	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("%s: decode response: %w", action, err)
	}
	if r.Error != nil && *r.Error != "" {
		return fmt.Errorf("%s: %w: %s", action, apperr.ErrBackend, *r.Error)
	}

	if out != nil && len(r.Result) > 0 {
		if err := json.Unmarshal(r.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", action, err)
		}
	}
	return nil
}

// FieldValue is one field of a note or card.
type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfo is a logical note as returned by notesInfo.
type NoteInfo struct {
	NoteID int64                 `json:"noteId"`
	Model  string                `json:"modelName"`
	Fields map[string]FieldValue `json:"fields"`
	Tags   []string              `json:"tags"`
	Mod    int64                 `json:"mod"`
	Cards  []int64               `json:"cards"`
}

// CardInfo is a physical card as returned by cardsInfo, carrying the
// scheduling statistics of that card.
type CardInfo struct {
	CardID   int64                 `json:"cardId"`
	NoteID   int64                 `json:"note"`
	Deck     string                `json:"deckName"`
	Fields   map[string]FieldValue `json:"fields"`
	Interval int                   `json:"interval"`
	Factor   int                   `json:"factor"`
	Lapses   int                   `json:"lapses"`
	Reps     int                   `json:"reps"`
	Due      int64                 `json:"due"`
}

// FindNotes returns the IDs of notes matching the query.
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	err := c.invoke(ctx, "findNotes", map[string]any{"query": query}, &ids)
	return ids, err
}

// FindCards returns the IDs of cards matching the query.
func (c *Client) FindCards(ctx context.Context, query string) ([]int64, error) {
	var ids []int64
	err := c.invoke(ctx, "findCards", map[string]any{"query": query}, &ids)
	return ids, err
}

// NotesInfo bulk-fetches full note records by ID. The backend does not
// guarantee result order.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]NoteInfo, error) {
	var notes []NoteInfo
	err := c.invoke(ctx, "notesInfo", map[string]any{"notes": ids}, &notes)
	return notes, err
}

// CardsInfo bulk-fetches full card records by ID.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]CardInfo, error) {
	var cards []CardInfo
	err := c.invoke(ctx, "cardsInfo", map[string]any{"cards": ids}, &cards)
	return cards, err
}

// AddNote creates one note and returns its ID.
func (c *Client) AddNote(ctx context.Context, deck, model string, fields map[string]string, tags []string) (int64, error) {
	var id int64
	err := c.invoke(ctx, "addNote", map[string]any{
		"note": map[string]any{
			"deckName":  deck,
			"modelName": model,
			"fields":    fields,
			"tags":      tags,
		},
	}, &id)
	return id, err
}

// AddTags adds the given tags (space-joined on the wire) to every note.
func (c *Client) AddTags(ctx context.Context, ids []int64, tags []string) error {
	return c.invoke(ctx, "addTags", map[string]any{
		"notes": ids,
		"tags":  strings.Join(tags, " "),
	}, nil)
}

// RemoveTags removes the given tags from every note.
func (c *Client) RemoveTags(ctx context.Context, ids []int64, tags []string) error {
	return c.invoke(ctx, "removeTags", map[string]any{
		"notes": ids,
		"tags":  strings.Join(tags, " "),
	}, nil)
}

// CreateDeck creates a deck if it does not exist and returns its ID.
// The backend treats an existing deck as success.
func (c *Client) CreateDeck(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.invoke(ctx, "createDeck", map[string]any{"deck": name}, &id)
	return id, err
}

// Sync triggers a collection sync with the remote server.
func (c *Client) Sync(ctx context.Context) error {
	return c.invoke(ctx, "sync", nil, nil)
}
