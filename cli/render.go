package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/axiomconsultancy/axiom-admin-go/datatable"
)

// renderTable prints rows as an aligned text table using the screen's
// column definitions. Columns without a title (the action slots) are
// skipped, and an ID column leads so every row is addressable in a
// follow-up command.
func renderTable(w io.Writer, columns []datatable.Column, rows []datatable.Row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := "ID"
	for _, col := range columns {
		if col.Title == "" || !col.Visible {
			continue
		}
		header += "\t" + col.Title
	}
	fmt.Fprintln(tw, header)

	for _, row := range rows {
		line := row["id"]
		for _, col := range columns {
			if col.Title == "" || !col.Visible {
				continue
			}
			line += "\t" + row[col.Key]
		}
		fmt.Fprintln(tw, line)
	}

	tw.Flush()
}

func renderFooter(w io.Writer, footer datatable.Footer) {
	fmt.Fprintf(w, "page %d of %d, %s records\n", footer.Page, footer.TotalPages, footer.TotalDisplay)
}
