package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qxad-lang/qxad/internal/cli"
)

func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// version must work even when the config file is broken
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "qxad", jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	return cmd
}
