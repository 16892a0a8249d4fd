package page

import (
	"reflect"
	"testing"

	"github.com/halvard/mnemo/internal/ankiconnect"
)

func TestPaginate_MiddlePage(t *testing.T) {
	items := []int{10, 11, 12, 13, 14}
	slice, meta := Paginate(items, 2, 2)
	if !reflect.DeepEqual(slice, []int{12, 13}) {
		t.Errorf("slice = %v", slice)
	}
	if meta.Total != 5 || meta.Page != 2 || !meta.HasMore {
		t.Errorf("meta = %+v", meta)
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	items := []int{10, 11, 12, 13, 14}
	slice, meta := Paginate(items, 2, 3)
	if !reflect.DeepEqual(slice, []int{14}) {
		t.Errorf("slice = %v", slice)
	}
	if meta.HasMore {
		t.Error("last page must report hasMore=false")
	}
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	slice, meta := Paginate([]int{1, 2}, 2, 9)
	if len(slice) != 0 || meta.Total != 2 || meta.HasMore {
		t.Errorf("slice = %v, meta = %+v", slice, meta)
	}
}

func TestPaginate_NonPositiveLimitReturnsAll(t *testing.T) {
	items := []int{1, 2, 3}
	slice, meta := Paginate(items, 0, 1)
	if !reflect.DeepEqual(slice, items) || meta.HasMore {
		t.Errorf("slice = %v, meta = %+v", slice, meta)
	}
}

func TestPaginate_PageClampedToOne(t *testing.T) {
	_, meta := Paginate([]int{1, 2, 3}, 2, 0)
	if meta.Page != 1 {
		t.Errorf("page = %d, want 1", meta.Page)
	}
	_, meta = Paginate([]int{1, 2, 3}, 2, -5)
	if meta.Page != 1 {
		t.Errorf("page = %d, want 1", meta.Page)
	}
}

func TestSortIDs(t *testing.T) {
	ids := []int64{3, 1, 2}
	SortIDs(ids, SortCreatedAsc)
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Errorf("asc = %v", ids)
	}
	SortIDs(ids, SortCreatedDesc)
	if !reflect.DeepEqual(ids, []int64{3, 2, 1}) {
		t.Errorf("desc = %v", ids)
	}

	ids = []int64{3, 1, 2}
	SortIDs(ids, "bogus")
	if !reflect.DeepEqual(ids, []int64{3, 1, 2}) {
		t.Errorf("unknown mode must not reorder, got %v", ids)
	}
}

func TestSortNotes_Modified(t *testing.T) {
	notes := []ankiconnect.NoteInfo{
		{NoteID: 1, Mod: 300},
		{NoteID: 2, Mod: 100},
		{NoteID: 3, Mod: 200},
	}
	SortNotes(notes, SortModifiedAsc)
	if notes[0].NoteID != 2 || notes[2].NoteID != 1 {
		t.Errorf("asc order = %v %v %v", notes[0].NoteID, notes[1].NoteID, notes[2].NoteID)
	}
	SortNotes(notes, SortModifiedDesc)
	if notes[0].NoteID != 1 || notes[2].NoteID != 2 {
		t.Errorf("desc order = %v %v %v", notes[0].NoteID, notes[1].NoteID, notes[2].NoteID)
	}
}

func TestReorderNotes(t *testing.T) {
	notes := []ankiconnect.NoteInfo{{NoteID: 2}, {NoteID: 1}, {NoteID: 3}}
	got := ReorderNotes(notes, []int64{1, 2, 3, 99})
	if len(got) != 3 || got[0].NoteID != 1 || got[1].NoteID != 2 || got[2].NoteID != 3 {
		t.Errorf("got %v", got)
	}
}
