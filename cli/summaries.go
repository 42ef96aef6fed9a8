package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
	"github.com/axiomconsultancy/axiom-admin-go/export"
)

const (
	exportPageSize = 100
	exportMaxPages = 50
)

func newSummariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summaries",
		Short: "Work with call summaries",
	}
	cmd.AddCommand(newSummariesExportCmd())
	return cmd
}

func newSummariesExportCmd() *cobra.Command {
	var (
		search  string
		agentID string
		from    string
		to      string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching call summaries to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFrom(cmd.Context())

			// Walk every page up to the cap, same as the console's
			// export endpoint.
			var all []axiom.Summary
			for page := 1; page <= exportMaxPages; page++ {
				list, err := client.ListSummaries(cmd.Context(), axiom.ListSummariesParams{
					Page:     page,
					PageSize: exportPageSize,
					Search:   search,
					AgentID:  agentID,
					From:     from,
					To:       to,
				})
				if err != nil {
					return err
				}

				all = append(all, list.Items...)
				if !list.Paged || len(list.Items) == 0 || len(all) >= list.Total {
					break
				}
			}

			data, err := export.CSV(all)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d summaries to %s\n", len(all), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&agentID, "agent-id", "", "Filter by agent")
	cmd.Flags().StringVar(&from, "from", "", "Earliest call date (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "Latest call date (RFC 3339)")
	cmd.Flags().StringVar(&out, "out", "summaries.csv", "Output file, - for stdout")
	return cmd
}
