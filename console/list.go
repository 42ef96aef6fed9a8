package console

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
)

// Strategy records which paging source produced a page. A single result
// always comes from exactly one strategy; server and client paging are
// never mixed within one page.
type Strategy string

const (
	// ServerPaged: the backend returned a paginated envelope and owns
	// the slicing.
	ServerPaged Strategy = "server"
	// ClientPaged: the backend returned the full set as a legacy array
	// and the console slices it locally.
	ClientPaged Strategy = "client"
	// DemoSeed: the backend had no data and the built-in demo records
	// are shown, sliced locally.
	DemoSeed Strategy = "demo"
)

// ErrSuperseded is returned when a newer fetch for the same screen was
// issued while this one was in flight. Callers drop the result.
var ErrSuperseded = errors.New("console: fetch superseded")

// DefaultPageSize is used when a query does not name one.
const DefaultPageSize = 10

const maxPageSize = 100

// Query is the common part of every list request.
type Query struct {
	Page     int
	PageSize int
	Search   string
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

// Page is one resolved page of a list screen.
type Page[T any] struct {
	Items        []T
	PageNum      int
	PageSize     int
	TotalRecords int
	Strategy     Strategy
}

// Footer builds the pagination footer for this page.
func (p Page[T]) Footer() datatable.Footer {
	return datatable.NewFooter(p.PageNum, p.PageSize, p.TotalRecords)
}

// fetchFunc loads one page from the backend. Implementations pass the
// page straight through to the platform list call.
type fetchFunc[T any] func(ctx context.Context, page, pageSize int) (axiom.List[T], error)

// resolvePage turns a raw platform list response into a valid page.
//
// Envelope responses are trusted for totals: if the requested page now
// lies past the last page (a delete shrank the list), the fetch clamps
// to the new last page and refetches once. If the envelope carries no
// usable total and the page came back empty, the fetch walks back one
// page at a time until it finds data or reaches page one.
//
// Legacy array responses carry the whole result set, so paging degrades
// to slicing locally. The two strategies never mix for one result.
func resolvePage[T any](ctx context.Context, q Query, fetch fetchFunc[T]) (Page[T], error) {
	q = q.normalized()

	list, err := fetch(ctx, q.Page, q.PageSize)
	if err != nil {
		return Page[T]{}, err
	}

	if !list.Paged {
		return slicePage(list.Items, q, ClientPaged), nil
	}

	page := q.Page

	if len(list.Items) == 0 && page > 1 {
		if list.Total > 0 {
			lastPage := datatable.Pages(list.Total, q.PageSize)
			if page > lastPage {
				log.Debug().
					Int("requested_page", page).
					Int("last_page", lastPage).
					Msg("Page past the end, clamping")

				page = lastPage
				list, err = fetch(ctx, page, q.PageSize)
				if err != nil {
					return Page[T]{}, err
				}
			}
		} else {
			for page > 1 && len(list.Items) == 0 {
				page--
				list, err = fetch(ctx, page, q.PageSize)
				if err != nil {
					return Page[T]{}, err
				}
			}
		}
	}

	total := list.Total
	if total < len(list.Items) {
		total = len(list.Items)
	}

	return Page[T]{
		Items:        list.Items,
		PageNum:      page,
		PageSize:     q.PageSize,
		TotalRecords: total,
		Strategy:     ServerPaged,
	}, nil
}

// slicePage pages a full in-memory set locally.
func slicePage[T any](items []T, q Query, strategy Strategy) Page[T] {
	q = q.normalized()

	total := len(items)
	page := datatable.Clamp(q.Page, datatable.Pages(total, q.PageSize))

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:        items[start:end],
		PageNum:      page,
		PageSize:     q.PageSize,
		TotalRecords: total,
		Strategy:     strategy,
	}
}
