package console

import (
	"context"
	"sort"
	"strings"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/datatable"
	"github.com/axiomconsultancy/axiom-admin-go/fetch"
)

// summaryLeaders is the preferred order for the fields callers look at
// first. Fields outside this list follow alphabetically.
var summaryLeaders = []string{
	"Caller Name",
	"Phone Number",
	"Agent",
	"Duration",
	"Outcome",
}

// SummariesController is read only. Call records are produced by the
// platform; the console lists, filters, and exports them.
type SummariesController struct {
	api SummariesAPI
	seq *fetch.Sequencer
}

func NewSummariesController(api SummariesAPI) *SummariesController {
	return &SummariesController{
		api: api,
		seq: fetch.NewSequencer(),
	}
}

type SummariesQuery struct {
	Query
	AgentID string
	From    string
	To      string
}

func (c *SummariesController) List(ctx context.Context, key string, q SummariesQuery) (Page[axiom.Summary], error) {
	return guarded(c.seq, ctx, key, func(ctx context.Context) (Page[axiom.Summary], error) {
		return resolvePage(ctx, q.Query, func(ctx context.Context, page, pageSize int) (axiom.List[axiom.Summary], error) {
			return c.api.ListSummaries(ctx, axiom.ListSummariesParams{
				Page:     page,
				PageSize: pageSize,
				Search:   strings.TrimSpace(q.Search),
				AgentID:  q.AgentID,
				From:     q.From,
				To:       q.To,
			})
		})
	})
}

// SummaryFieldOrder returns the union of field keys across the given
// summaries: well known fields first in their preferred order, the rest
// alphabetical. Summaries have no fixed schema, so the table's columns
// are derived per page.
func SummaryFieldOrder(summaries []axiom.Summary) []string {
	seen := make(map[string]bool)
	for _, summary := range summaries {
		for key := range summary.Fields {
			seen[key] = true
		}
	}

	var order []string
	for _, leader := range summaryLeaders {
		if seen[leader] {
			order = append(order, leader)
			delete(seen, leader)
		}
	}

	rest := make([]string, 0, len(seen))
	for key := range seen {
		rest = append(rest, key)
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// SummaryColumns builds the table definition for one page of summaries.
// The created-at column is always present and leads; field columns
// follow in SummaryFieldOrder.
func SummaryColumns(summaries []axiom.Summary) []datatable.Column {
	columns := []datatable.Column{
		{Key: "created_at", Title: "Date", Width: 160, Sticky: datatable.StickyLeft, Visible: true, Sortable: true},
	}
	for _, field := range SummaryFieldOrder(summaries) {
		columns = append(columns, datatable.Column{
			Key:      field,
			Title:    field,
			Width:    160,
			Visible:  true,
			Hideable: true,
		})
	}
	return columns
}

// SummaryRows renders summaries for the table. Missing fields render as
// empty cells.
func SummaryRows(summaries []axiom.Summary) []datatable.Row {
	rows := make([]datatable.Row, 0, len(summaries))
	for _, summary := range summaries {
		row := datatable.Row{
			"id":         summary.ID,
			"created_at": summary.CreatedAt,
		}
		for key, value := range summary.Fields {
			row[key] = value
		}
		rows = append(rows, row)
	}
	return rows
}
