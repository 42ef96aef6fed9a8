package datatable

import "strconv"

// Ellipsis marks a gap in a page window.
const Ellipsis = -1

// Pages returns the number of pages needed for totalRecords at pageSize,
// never less than one.
func Pages(totalRecords, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalRecords + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp forces page into the valid range [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// PageWindow builds the footer page list: the first page, a window of span
// pages around the current page, and the last page, with Ellipsis markers
// where pages were skipped. A gap of a single page is shown as the page
// itself rather than an ellipsis.
func PageWindow(current, totalPages, span int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	current = Clamp(current, totalPages)
	if span < 0 {
		span = 0
	}

	lo := current - span
	hi := current + span
	if lo < 1 {
		lo = 1
	}
	if hi > totalPages {
		hi = totalPages
	}

	var pages []int

	if lo > 1 {
		pages = append(pages, 1)
		if lo == 3 {
			pages = append(pages, 2)
		} else if lo > 3 {
			pages = append(pages, Ellipsis)
		}
	}

	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}

	if hi < totalPages {
		if hi == totalPages-2 {
			pages = append(pages, totalPages-1)
		} else if hi < totalPages-2 {
			pages = append(pages, Ellipsis)
		}
		pages = append(pages, totalPages)
	}

	return pages
}

// Footer is the pagination strip under a table.
type Footer struct {
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
	TotalRecords int    `json:"total_records,omitempty"`
	TotalKnown   bool   `json:"total_known"`
	TotalDisplay string `json:"total_display"`
	TotalPages   int    `json:"total_pages"`
	IsLastPage   bool   `json:"is_last_page"`
	PageWindow   []int  `json:"page_window"`
}

// NewFooter builds the footer for a known record total.
func NewFooter(page, pageSize, totalRecords int) Footer {
	totalPages := Pages(totalRecords, pageSize)
	page = Clamp(page, totalPages)

	return Footer{
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
		TotalKnown:   true,
		TotalDisplay: strconv.Itoa(totalRecords),
		TotalPages:   totalPages,
		IsLastPage:   page >= totalPages,
		PageWindow:   PageWindow(page, totalPages, 1),
	}
}

// NewFooterUnknown builds the footer when the backend reports no total.
// The display string stands in for the count ("many", "50+") and paging
// degrades to previous/next gated by hasMore.
func NewFooterUnknown(page, pageSize int, hasMore bool, display string) Footer {
	return Footer{
		Page:         page,
		PageSize:     pageSize,
		TotalKnown:   false,
		TotalDisplay: display,
		IsLastPage:   !hasMore,
		PageWindow:   []int{page},
	}
}
