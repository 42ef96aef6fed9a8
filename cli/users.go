package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/axiomconsultancy/axiom-admin-go/console"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform users",
	}
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersBlockCmd())
	cmd.AddCommand(newUsersUnblockCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		search   string
		role     string
		blocked  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := console.UsersQuery{
				Query: console.Query{Page: page, PageSize: pageSize, Search: search},
				Role:  role,
			}
			if blocked != "" {
				value, err := strconv.ParseBool(blocked)
				if err != nil {
					return fmt.Errorf("--blocked must be true or false, got %q", blocked)
				}
				q.Blocked = &value
			}

			controller := console.NewUsersController(clientFrom(cmd.Context()))
			result, err := controller.List(cmd.Context(), cliFetchKey, q)
			if err != nil {
				return err
			}

			renderTable(cmd.OutOrStdout(), console.UserColumns(), console.UserRows(result.Items))
			renderFooter(cmd.OutOrStdout(), result.Footer())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", console.DefaultPageSize, "Rows per page")
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (admin or user)")
	cmd.Flags().StringVar(&blocked, "blocked", "", "Filter by blocked state (true or false)")
	return cmd
}

func newUsersBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block <user-id>",
		Short: "Block a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := clientFrom(cmd.Context()).SetUserBlocked(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Blocked %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	return cmd
}

func newUsersUnblockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unblock <user-id>",
		Short: "Lift a user's block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := clientFrom(cmd.Context()).SetUserBlocked(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unblocked %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
	return cmd
}
