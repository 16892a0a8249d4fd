// Package review implements the scheduling-aware pipeline variant for
// record kinds that carry multiple physical review-cards per logical note.
package review

import (
	"context"
	"sort"

	"github.com/halvard/mnemo/internal/ankiconnect"
	"github.com/halvard/mnemo/internal/page"
	"github.com/halvard/mnemo/internal/result"
)

// CardSource is the backend slice the aggregator consumes.
type CardSource interface {
	FindCards(ctx context.Context, query string) ([]int64, error)
	CardsInfo(ctx context.Context, ids []int64) ([]ankiconnect.CardInfo, error)
}

// Aggregate fetches all candidate cards for the query, deduplicates them to
// one result per logical note, sorts under a scheduling sort mode, and
// paginates.
//
// Deduplication is first-wins in fetch order: the first card encountered
// per note supplies the fields and scheduling statistics surfaced for that
// note; later cards are dropped silently. Pagination cannot happen before
// the fetch because dedup needs the full candidate set.
func Aggregate(ctx context.Context, src CardSource, query string, defaultFields []string, limit, pageNum int, include map[string]bool, mode string) ([]result.Compact, page.Meta, error) {
	ids, err := src.FindCards(ctx, query)
	if err != nil {
		return nil, page.Meta{}, err
	}

	cards, err := src.CardsInfo(ctx, ids)
	if err != nil {
		return nil, page.Meta{}, err
	}

	seen := make(map[int64]bool, len(cards))
	deduped := make([]ankiconnect.CardInfo, 0, len(cards))
	for _, c := range cards {
		if seen[c.NoteID] {
			continue
		}
		seen[c.NoteID] = true
		deduped = append(deduped, c)
	}

	sortCards(deduped, mode)

	slice, meta := page.Paginate(deduped, limit, pageNum)

	out := make([]result.Compact, 0, len(slice))
	for _, c := range slice {
		r := result.Project(c.NoteID, c.Fields, nil, defaultFields, include)
		r["interval"] = c.Interval
		r["ease"] = c.Factor
		r["lapses"] = c.Lapses
		r["reps"] = c.Reps
		out = append(out, r)
	}
	return out, meta, nil
}

// sortCards applies a scheduling sort mode. Identifier and modified sorts
// are not meaningful post-deduplication and leave fetch order untouched.
func sortCards(cards []ankiconnect.CardInfo, mode string) {
	switch mode {
	case page.SortLapsesAsc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Lapses < cards[j].Lapses })
	case page.SortLapsesDesc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Lapses > cards[j].Lapses })
	case page.SortEaseAsc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Factor < cards[j].Factor })
	case page.SortEaseDesc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Factor > cards[j].Factor })
	}
}
