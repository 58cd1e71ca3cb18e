package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd(env func() *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(
		newSetAdminCmd(env, "promote", "Grant admin privileges to the account with <email>", true),
		newSetAdminCmd(env, "demote", "Revoke admin privileges from the account with <email>", false),
	)
	return cmd
}

func newSetAdminCmd(env func() *Env, use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := env().Users.SetAdminByEmail(cmd.Context(), args[0], isAdmin)
			if err != nil {
				return fmt.Errorf("%s %s: %w", use, args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tadmin=%t\n", identity.ID, identity.Email, identity.IsAdmin)
			return nil
		},
	}
}
