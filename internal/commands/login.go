package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(env *cliEnv) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := env.session()
			if err != nil {
				return err
			}

			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			if !session.Login(cmd.Context(), email, pw) {
				return fmt.Errorf("login failed: %s", session.LastError())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", session.Email())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}

// resolvePassword uses the flag value when given, otherwise prompts for a
// line on the command's input stream.
func resolvePassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
