package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invoice-tracker/invoicetrack/internal/client"
)

func newUploadCommand(env *cliEnv) *cobra.Command {
	var form client.InvoiceMetadata

	cmd := &cobra.Command{
		Use:   "upload [file.pdf]",
		Short: "Upload an invoice document or record one manually",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := env.authorized()
			if err != nil {
				return err
			}

			coordinator := client.NewUploadCoordinator(api, nil)

			if len(args) > 0 {
				content, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading document: %w", err)
				}
				if err := coordinator.SelectFile(filepath.Base(args[0]), content); err != nil {
					return err
				}
			} else {
				coordinator.SetManualEntry(true)
			}
			coordinator.SetMetadata(form)

			if err := coordinator.Submit(cmd.Context()); err != nil {
				if msg := coordinator.Message(); msg != "" {
					return fmt.Errorf("upload failed: %s", msg)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Invoice uploaded")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Vendor, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&form.Amount, "amount", "", "invoice amount, e.g. 42.50")
	cmd.Flags().StringVar(&form.InvoiceDate, "date", "", "invoice date as YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Category, "category", "", "expense category")

	return cmd
}
