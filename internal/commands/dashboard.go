package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/invoice-tracker/invoicetrack/internal/client"
)

func newDashboardCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show spending aggregates across your invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := env.authorized()
			if err != nil {
				return err
			}

			dashboard := client.NewDashboard(api)
			if err := dashboard.Refresh(cmd.Context()); err != nil {
				return err
			}
			snapshot := dashboard.Snapshot()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invoices: %d\n", snapshot.Summary.Count)
			fmt.Fprintf(out, "Total spend: %s\n", snapshot.Summary.TotalSpend.StringFixed(2))

			if len(snapshot.Categories) > 0 {
				fmt.Fprintln(out, "\nBy category:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, category := range sortedKeys(snapshot.Categories) {
					fmt.Fprintf(w, "  %s\t%d\n", category, snapshot.Categories[category])
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if len(snapshot.Monthly) > 0 {
				fmt.Fprintln(out, "\nBy month:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, bucket := range snapshot.Monthly {
					fmt.Fprintf(w, "  %s\t%s\n", bucket.Month, bucket.Total.StringFixed(2))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if len(snapshot.Vendors) > 0 {
				fmt.Fprintln(out, "\nBy vendor:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				vendors := make([]string, 0, len(snapshot.Vendors))
				for vendor := range snapshot.Vendors {
					vendors = append(vendors, vendor)
				}
				sort.Strings(vendors)
				for _, vendor := range vendors {
					fmt.Fprintf(w, "  %s\t%s\n", vendor, snapshot.Vendors[vendor].StringFixed(2))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
