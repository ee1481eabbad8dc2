package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(env *cliEnv) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := env.session()
			if err != nil {
				return err
			}

			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			if !session.Register(cmd.Context(), email, pw) {
				return fmt.Errorf("registration failed: %s", session.LastError())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run \"invoicectl login\" to start a session.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}
