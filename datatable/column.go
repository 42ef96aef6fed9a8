package datatable

// StickySide indicates which edge a column is pinned to, if any.
type StickySide string

const (
	StickyNone  StickySide = ""
	StickyLeft  StickySide = "left"
	StickyRight StickySide = "right"
)

// DefaultWidth is used for offset math when a column declares neither
// a width nor a minimum width.
const DefaultWidth = 150

// Column describes one column of a data table. Key must be unique within
// a model and matches the row field it renders.
type Column struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Width    int        `json:"width,omitempty"`
	MinWidth int        `json:"min_width,omitempty"`
	Sticky   StickySide `json:"sticky,omitempty"`
	Visible  bool       `json:"visible"`
	Sortable bool       `json:"sortable,omitempty"`
	Hideable bool       `json:"hideable,omitempty"`
	Align    string     `json:"align,omitempty"`
}

func (c Column) effectiveWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	if c.MinWidth > 0 {
		return c.MinWidth
	}
	return DefaultWidth
}
