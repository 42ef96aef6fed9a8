package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/axiomconsultancy/axiom-admin-go/console"
)

func newCouponsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupons",
		Short: "Inspect billing coupons",
	}
	cmd.AddCommand(newCouponsListCmd())
	return cmd
}

func newCouponsListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		search   string
		status   string
		planID   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coupons",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := console.NewCouponsController(clientFrom(cmd.Context()))

			result, err := controller.List(cmd.Context(), cliFetchKey, console.CouponsQuery{
				Query:  console.Query{Page: page, PageSize: pageSize, Search: search},
				Status: status,
				PlanID: planID,
			})
			if err != nil {
				return err
			}

			renderTable(cmd.OutOrStdout(), console.CouponColumns(), console.CouponRows(result.Items, time.Now()))
			renderFooter(cmd.OutOrStdout(), result.Footer())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", console.DefaultPageSize, "Rows per page")
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, draft, scheduled, expired)")
	cmd.Flags().StringVar(&planID, "plan-id", "", "Filter by applicable plan")
	return cmd
}
