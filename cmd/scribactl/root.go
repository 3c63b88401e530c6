package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the scriba CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scribactl",
		Short:        "Scriba credential administration",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewPasswordCmd())
	cmd.AddCommand(NewTokenCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// argOrStdin returns args[0], or the first line of stdin when no argument
// is given or the argument is "-".
func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no input provided")
	}
	return line, nil
}
