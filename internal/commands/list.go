package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

func newListCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your invoices, newest upload first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := env.authorized()
			if err != nil {
				return err
			}

			invoices, err := api.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}

			if len(invoices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No invoices yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tVENDOR\tAMOUNT\tCATEGORY\tFILE")
			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inv.ID,
					optionalDate(inv),
					optionalString(inv.Vendor),
					optionalAmount(inv),
					optionalString(inv.Category),
					inv.FileName,
				)
			}
			return w.Flush()
		},
	}
}

func optionalString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optionalDate(inv *entity.Invoice) string {
	if inv.InvoiceDate == nil {
		return "-"
	}
	return inv.InvoiceDate.Format(entity.InvoiceDateLayout)
}

func optionalAmount(inv *entity.Invoice) string {
	if inv.Amount == nil {
		return "-"
	}
	return inv.Amount.StringFixed(2)
}
