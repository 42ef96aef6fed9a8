package datatable

// Model holds the column state for one table: declaration order, per-column
// visibility and pinning, and the pin cap. Row data never lives here.
type Model struct {
	columns   []Column
	maxSticky int
}

// DefaultMaxSticky caps how many columns can be pinned at once.
const DefaultMaxSticky = 3

// NewModel creates a table model from the screen's column definitions.
// A maxSticky of zero or less falls back to DefaultMaxSticky.
func NewModel(columns []Column, maxSticky int) *Model {
	if maxSticky <= 0 {
		maxSticky = DefaultMaxSticky
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)

	return &Model{
		columns:   cols,
		maxSticky: maxSticky,
	}
}

// Columns returns a copy of all columns in declaration order.
func (m *Model) Columns() []Column {
	cols := make([]Column, len(m.columns))
	copy(cols, m.columns)
	return cols
}

// Column returns the column with the given key.
func (m *Model) Column(key string) (Column, bool) {
	for _, col := range m.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// VisibleColumns returns the visible columns in declaration order.
func (m *Model) VisibleColumns() []Column {
	var cols []Column
	for _, col := range m.columns {
		if col.Visible {
			cols = append(cols, col)
		}
	}
	return cols
}

// StickyCount returns how many visible columns are currently pinned.
func (m *Model) StickyCount() int {
	count := 0
	for _, col := range m.columns {
		if col.Visible && col.Sticky != StickyNone {
			count++
		}
	}
	return count
}

// MaxSticky returns the pin cap for this model.
func (m *Model) MaxSticky() int {
	return m.maxSticky
}

// SetSticky pins or unpins a column. Pinning a column when the cap is
// already reached does nothing and returns false. Unpinning always
// succeeds. Hidden columns cannot be pinned.
func (m *Model) SetSticky(key string, side StickySide) bool {
	for i, col := range m.columns {
		if col.Key != key {
			continue
		}

		if side == StickyNone {
			m.columns[i].Sticky = StickyNone
			return true
		}

		if !col.Visible {
			return false
		}

		// Moving an already pinned column between sides does not
		// count against the cap.
		if col.Sticky == StickyNone && m.StickyCount() >= m.maxSticky {
			return false
		}

		m.columns[i].Sticky = side
		return true
	}
	return false
}

// SetVisible shows or hides a column. Hiding a pinned column clears its
// pin; showing it again does not restore the pin. Columns marked not
// hideable cannot be hidden.
func (m *Model) SetVisible(key string, visible bool) bool {
	for i, col := range m.columns {
		if col.Key != key {
			continue
		}

		if !visible {
			if !col.Hideable {
				return false
			}
			m.columns[i].Visible = false
			m.columns[i].Sticky = StickyNone
			return true
		}

		m.columns[i].Visible = true
		return true
	}
	return false
}

// Offsets computes the pixel offset of every visible pinned column, keyed
// by column key. A left pinned column is offset by the widths of the
// visible left pinned columns declared before it; a right pinned column by
// the widths of the visible right pinned columns declared after it, since
// those stack against the right edge.
func (m *Model) Offsets() map[string]int {
	offsets := make(map[string]int)

	left := 0
	for _, col := range m.columns {
		if !col.Visible || col.Sticky != StickyLeft {
			continue
		}
		offsets[col.Key] = left
		left += col.effectiveWidth()
	}

	right := 0
	for i := len(m.columns) - 1; i >= 0; i-- {
		col := m.columns[i]
		if !col.Visible || col.Sticky != StickyRight {
			continue
		}
		offsets[col.Key] = right
		right += col.effectiveWidth()
	}

	return offsets
}

// ApplyLayout overlays a saved visibility and pin selection onto the
// model. Unknown keys are ignored. Pins are applied after visibility so
// the cap is enforced against the restored state.
func (m *Model) ApplyLayout(layout Layout) {
	for key, visible := range layout.Visible {
		m.SetVisible(key, visible)
	}
	for key, side := range layout.Sticky {
		m.SetSticky(key, side)
	}
}

// Layout is the persistable part of a model: which columns the user hid
// and which they pinned.
type Layout struct {
	Visible map[string]bool       `json:"visible,omitempty"`
	Sticky  map[string]StickySide `json:"sticky,omitempty"`
}

// CurrentLayout extracts the persistable selection from the model.
func (m *Model) CurrentLayout() Layout {
	layout := Layout{
		Visible: make(map[string]bool),
		Sticky:  make(map[string]StickySide),
	}
	for _, col := range m.columns {
		layout.Visible[col.Key] = col.Visible
		if col.Sticky != StickyNone {
			layout.Sticky[col.Key] = col.Sticky
		}
	}
	return layout
}
