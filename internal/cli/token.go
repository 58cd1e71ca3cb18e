package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd(env func() *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Session token utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "mint <user-id>",
		Short: "Issue a session token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			identity, err := e.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup %s: %w", args[0], err)
			}
			token, exp, err := e.Tokens.GenerateToken(identity.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
			return nil
		},
	})
	return cmd
}
