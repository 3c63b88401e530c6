package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/scriba-server/internal/token"
)

// NewTokenCmd creates the token subcommand.
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect tokens",
	}

	cmd.AddCommand(newTokenDecodeCmd())

	return cmd
}

func newTokenDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [token|-]",
		Short: "Print the identity carried by a session token",
		Long: `Print the identity carried by a session token.
The signature and expiry are NOT checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}

			claims, err := token.NewSessionIssuer("").Decode(raw)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user_id: %s\nemail: %s\n", claims.UserID, claims.Email)
			return nil
		},
	}
}
