// Package commands wires the invoice tracker client core into a cobra CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invoice-tracker/invoicetrack/internal/client"
)

const defaultAPIURL = "http://localhost:8000"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	env := &cliEnv{}

	rootCmd := &cobra.Command{
		Use:   "invoicectl",
		Short: "Track expense invoices from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&env.apiURL, "api-url", defaultAPIURL, "base URL of the invoice tracker API")
	rootCmd.PersistentFlags().StringVar(&env.credentialFile, "credentials", "", "path of the saved access token (defaults to the user config directory)")

	rootCmd.AddCommand(
		newRegisterCommand(env),
		newLoginCommand(env),
		newLogoutCommand(env),
		newUploadCommand(env),
		newListCommand(env),
		newDeleteCommand(env),
		newDashboardCommand(env),
	)

	return rootCmd
}

// cliEnv carries the resolved global flags to subcommands.
type cliEnv struct {
	apiURL         string
	credentialFile string
}

// session builds the API client and session manager over the credential
// store selected by the global flags.
func (e *cliEnv) session() (*client.SessionManager, *client.API, error) {
	path := e.credentialFile
	if path == "" {
		var err error
		path, err = client.DefaultCredentialPath()
		if err != nil {
			return nil, nil, err
		}
	}
	store := client.NewFileCredentialStore(path)

	var session *client.SessionManager
	api := client.NewAPI(e.apiURL, func() string {
		return session.Token()
	})
	session = client.NewSessionManager(store, api)
	return session, api, nil
}

// authorized resolves the stored session and requires an authenticated one.
func (e *cliEnv) authorized() (*client.SessionManager, *client.API, error) {
	session, api, err := e.session()
	if err != nil {
		return nil, nil, err
	}
	if err := client.NewRouteGate(session).Authorize(); err != nil {
		return nil, nil, fmt.Errorf("not logged in: run \"invoicectl login\" first")
	}
	return session, api, nil
}
