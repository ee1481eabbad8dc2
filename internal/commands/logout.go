package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := env.session()
			if err != nil {
				return err
			}

			if err := session.Logout(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
