package datatable

// Sort directions. An empty direction means unsorted.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort is the table's sort state. Ordering itself is the data source's
// job; the table only tracks and cycles the selection.
type Sort struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// ToggleSort advances the sort state for a column click: none to asc, asc
// to desc, desc back to none. Clicking a different sortable column starts
// it at asc. Clicks on unsortable columns leave the state untouched.
func (m *Model) ToggleSort(current Sort, key string) Sort {
	col, ok := m.Column(key)
	if !ok || !col.Sortable {
		return current
	}

	if current.Key != key {
		return Sort{Key: key, Direction: SortAsc}
	}

	switch current.Direction {
	case SortAsc:
		return Sort{Key: key, Direction: SortDesc}
	case SortDesc:
		return Sort{}
	default:
		return Sort{Key: key, Direction: SortAsc}
	}
}

// Row is one rendered table row, keyed by column key. The reserved "id"
// key carries the row identity used for actions and busy tracking.
type Row map[string]string

// ColumnView is a visible column with its computed pin offset.
type ColumnView struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Width    int        `json:"width"`
	Sticky   StickySide `json:"sticky,omitempty"`
	Offset   int        `json:"offset"`
	Align    string     `json:"align,omitempty"`
	Sortable bool       `json:"sortable,omitempty"`
}

// View is the complete render model for one table screen.
type View struct {
	Columns  []ColumnView `json:"columns"`
	Rows     []Row        `json:"rows"`
	Sort     *Sort        `json:"sort,omitempty"`
	Footer   Footer       `json:"footer"`
	BusyRows []string     `json:"busy_rows,omitempty"`
	Error    string       `json:"error,omitempty"`
	CanRetry bool         `json:"can_retry,omitempty"`
}

// ViewOptions carries the per-request extras for BuildView.
type ViewOptions struct {
	Sort     *Sort
	BusyRows []string
	Error    string
	CanRetry bool
}

// BuildView assembles the render model: visible columns in declaration
// order with pin offsets, the rows as given, and the footer. Errors are
// the caller's state; the view only carries them to the client.
func BuildView(m *Model, rows []Row, footer Footer, opts ViewOptions) View {
	offsets := m.Offsets()

	var cols []ColumnView
	for _, col := range m.VisibleColumns() {
		cols = append(cols, ColumnView{
			Key:      col.Key,
			Title:    col.Title,
			Width:    col.effectiveWidth(),
			Sticky:   col.Sticky,
			Offset:   offsets[col.Key],
			Align:    col.Align,
			Sortable: col.Sortable,
		})
	}

	if rows == nil {
		rows = []Row{}
	}

	return View{
		Columns:  cols,
		Rows:     rows,
		Sort:     opts.Sort,
		Footer:   footer,
		BusyRows: opts.BusyRows,
		Error:    opts.Error,
		CanRetry: opts.CanRetry,
	}
}

// ColumnSetting is one row of the column settings panel.
type ColumnSetting struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Visible  bool       `json:"visible"`
	Sticky   StickySide `json:"sticky,omitempty"`
	Hideable bool       `json:"hideable"`
	CanPin   bool       `json:"can_pin"`
}

// Settings lists every column with what the settings panel may do to it.
// CanPin reflects the pin cap: pinned columns can always be unpinned, and
// new pins are offered only below the cap.
func (m *Model) Settings() []ColumnSetting {
	atCap := m.StickyCount() >= m.maxSticky

	var settings []ColumnSetting
	for _, col := range m.columns {
		canPin := col.Visible && (col.Sticky != StickyNone || !atCap)
		settings = append(settings, ColumnSetting{
			Key:      col.Key,
			Title:    col.Title,
			Visible:  col.Visible,
			Sticky:   col.Sticky,
			Hideable: col.Hideable,
			CanPin:   canPin,
		})
	}
	return settings
}
