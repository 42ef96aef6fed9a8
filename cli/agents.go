package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axiomconsultancy/axiom-admin-go/console"
)

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Manage voice agents",
	}
	cmd.AddCommand(newAgentsListCmd())
	cmd.AddCommand(newAgentsGetCmd())
	cmd.AddCommand(newAgentsDeleteCmd())
	return cmd
}

func newAgentsListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		search   string
		tag      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := console.NewAgentsController(clientFrom(cmd.Context()))

			result, err := controller.List(cmd.Context(), cliFetchKey, console.AgentsQuery{
				Query: console.Query{Page: page, PageSize: pageSize, Search: search},
				Tag:   tag,
			})
			if err != nil {
				return err
			}

			renderTable(cmd.OutOrStdout(), console.AgentColumns(), console.AgentRows(result.Items))
			renderFooter(cmd.OutOrStdout(), result.Footer())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", console.DefaultPageSize, "Rows per page")
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag")
	return cmd
}

func newAgentsGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <agent-id>",
		Short: "Show one agent as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := clientFrom(cmd.Context()).GetAgent(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(agent, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return cmd
}

func newAgentsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <agent-id>",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, fmt.Sprintf("Delete agent %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := clientFrom(cmd.Context()).DeleteAgent(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted agent %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
