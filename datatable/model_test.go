package datatable

import (
	"reflect"
	"testing"
)

func testColumns() []Column {
	return []Column{
		{Key: "name", Title: "Name", Width: 200, Sticky: StickyLeft, Visible: true, Hideable: false},
		{Key: "email", Title: "Email", Width: 240, Sticky: StickyLeft, Visible: true, Hideable: true},
		{Key: "role", Title: "Role", Width: 120, Visible: true, Hideable: true},
		{Key: "status", Title: "Status", Width: 100, Visible: true, Hideable: true},
		{Key: "actions", Title: "Actions", Width: 90, Sticky: StickyRight, Visible: true, Hideable: false},
	}
}

func TestOffsets_LeftColumnsAccumulate(t *testing.T) {
	m := NewModel(testColumns(), 4)

	offsets := m.Offsets()

	if offsets["name"] != 0 {
		t.Errorf("Expected first left pinned column at offset 0, got %d", offsets["name"])
	}

	if offsets["email"] != 200 {
		t.Errorf("Expected second left pinned column at offset 200, got %d", offsets["email"])
	}
}

func TestOffsets_RightColumnsAccumulateFromRightEdge(t *testing.T) {
	cols := testColumns()
	cols[3].Sticky = StickyRight // status joins actions on the right

	m := NewModel(cols, 4)
	offsets := m.Offsets()

	if offsets["actions"] != 0 {
		t.Errorf("Expected rightmost pinned column at offset 0, got %d", offsets["actions"])
	}

	if offsets["status"] != 90 {
		t.Errorf("Expected status offset by actions width 90, got %d", offsets["status"])
	}
}

func TestOffsets_HiddenPinnedColumnExcluded(t *testing.T) {
	m := NewModel(testColumns(), 4)

	if ok := m.SetVisible("email", false); !ok {
		t.Fatal("Expected hiding email to succeed")
	}

	offsets := m.Offsets()

	if _, found := offsets["email"]; found {
		t.Error("Expected hidden column to have no offset")
	}

	if offsets["name"] != 0 {
		t.Errorf("Expected name offset to stay 0, got %d", offsets["name"])
	}
}

func TestOffsets_OnlyPrecedingSameSideCounted(t *testing.T) {
	cols := []Column{
		{Key: "a", Width: 100, Sticky: StickyLeft, Visible: true},
		{Key: "b", Width: 50, Visible: true},
		{Key: "c", Width: 80, Sticky: StickyLeft, Visible: true},
		{Key: "d", Width: 60, Sticky: StickyRight, Visible: true},
		{Key: "e", Width: 40, Sticky: StickyLeft, Visible: true},
	}

	m := NewModel(cols, 5)
	offsets := m.Offsets()

	expected := map[string]int{
		"a": 0,
		"c": 100, // only a precedes it on the left; b is unpinned
		"e": 180, // a + c
		"d": 0,
	}

	if !reflect.DeepEqual(offsets, expected) {
		t.Errorf("Expected offsets %v, got %v", expected, offsets)
	}
}

func TestSetVisible_HidingClearsSticky(t *testing.T) {
	m := NewModel(testColumns(), 4)

	m.SetVisible("email", false)
	m.SetVisible("email", true)

	col, _ := m.Column("email")
	if col.Sticky != StickyNone {
		t.Errorf("Expected sticky cleared after hide/show cycle, got %q", col.Sticky)
	}
	if !col.Visible {
		t.Error("Expected column visible after show")
	}
}

func TestSetVisible_NotHideableColumnStays(t *testing.T) {
	m := NewModel(testColumns(), 4)

	if ok := m.SetVisible("name", false); ok {
		t.Error("Expected hiding a non hideable column to fail")
	}

	col, _ := m.Column("name")
	if !col.Visible {
		t.Error("Expected non hideable column to remain visible")
	}
}

func TestSetSticky_CapIsNoOp(t *testing.T) {
	m := NewModel(testColumns(), 3)

	if m.StickyCount() != 3 {
		t.Fatalf("Expected 3 pinned columns to start, got %d", m.StickyCount())
	}

	if ok := m.SetSticky("role", StickyLeft); ok {
		t.Error("Expected pinning beyond the cap to be rejected")
	}

	col, _ := m.Column("role")
	if col.Sticky != StickyNone {
		t.Errorf("Expected role to stay unpinned, got %q", col.Sticky)
	}

	if m.StickyCount() != 3 {
		t.Errorf("Expected pin count unchanged at 3, got %d", m.StickyCount())
	}
}

func TestSetSticky_UnpinAlwaysAllowed(t *testing.T) {
	m := NewModel(testColumns(), 3)

	if ok := m.SetSticky("email", StickyNone); !ok {
		t.Error("Expected unpinning to succeed at the cap")
	}

	if ok := m.SetSticky("role", StickyLeft); !ok {
		t.Error("Expected pinning to succeed after freeing a slot")
	}
}

func TestSetSticky_SideSwapDoesNotCountAgainstCap(t *testing.T) {
	m := NewModel(testColumns(), 3)

	if ok := m.SetSticky("email", StickyRight); !ok {
		t.Error("Expected moving a pinned column between sides to succeed at the cap")
	}

	col, _ := m.Column("email")
	if col.Sticky != StickyRight {
		t.Errorf("Expected email pinned right, got %q", col.Sticky)
	}
}

func TestSetSticky_HiddenColumnRejected(t *testing.T) {
	m := NewModel(testColumns(), 4)

	m.SetVisible("role", false)

	if ok := m.SetSticky("role", StickyLeft); ok {
		t.Error("Expected pinning a hidden column to fail")
	}
}

func TestApplyLayout_RoundTrip(t *testing.T) {
	m := NewModel(testColumns(), 4)
	m.SetVisible("status", false)
	m.SetSticky("role", StickyLeft)

	saved := m.CurrentLayout()

	restored := NewModel(testColumns(), 4)
	restored.ApplyLayout(saved)

	if !reflect.DeepEqual(restored.CurrentLayout(), saved) {
		t.Errorf("Expected restored layout %v, got %v", saved, restored.CurrentLayout())
	}
}

func TestToggleSort_Cycle(t *testing.T) {
	m := NewModel([]Column{
		{Key: "name", Visible: true, Sortable: true},
		{Key: "notes", Visible: true},
	}, 3)

	s := m.ToggleSort(Sort{}, "name")
	if s.Direction != SortAsc {
		t.Errorf("Expected first click to sort asc, got %q", s.Direction)
	}

	s = m.ToggleSort(s, "name")
	if s.Direction != SortDesc {
		t.Errorf("Expected second click to sort desc, got %q", s.Direction)
	}

	s = m.ToggleSort(s, "name")
	if s.Key != "" || s.Direction != "" {
		t.Errorf("Expected third click to clear sort, got %+v", s)
	}

	s = m.ToggleSort(Sort{Key: "name", Direction: SortAsc}, "notes")
	if s.Key != "name" {
		t.Errorf("Expected unsortable column click to keep state, got %+v", s)
	}
}
