package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/scriba-server/internal/credential"
	"github.com/dtroode/scriba-server/internal/model"
)

// NewPasswordCmd creates the password subcommand.
func NewPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Check and hash passwords",
	}

	cmd.AddCommand(newPasswordCheckCmd())
	cmd.AddCommand(newPasswordHashCmd())

	return cmd
}

func newPasswordCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [password|-]",
		Short: "Check a password against the password policy",
		Long: `Check a password against the password policy.
Reads the password from stdin when no argument or "-" is given.
Exits non-zero and prints the first broken rule when the password is rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}

			err = credential.ValidatePassword(password)
			var violation *model.PolicyViolationError
			if errors.As(err, &violation) {
				fmt.Fprintf(cmd.OutOrStdout(), "rejected (%s): %s\n", violation.Rule, violation.Reason)
				return err
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newPasswordHashCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash [password|-]",
		Short: "Print the bcrypt credential for a password",
		Long: `Print the bcrypt credential for a password.
Reads the password from stdin when no argument or "-" is given.
The policy is not checked; run "password check" first when it matters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}

			hasher, err := credential.NewBcryptHasher(cost)
			if err != nil {
				return err
			}

			hash, err := hasher.Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", credential.DefaultCost, "bcrypt work factor")

	return cmd
}
