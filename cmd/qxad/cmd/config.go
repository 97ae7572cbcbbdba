package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qxad-lang/qxad/internal/cli"
	qxerrors "github.com/qxad-lang/qxad/internal/errors"
)

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + cli.DefaultConfigFile,
		Args:  cobra.NoArgs,
		// init must not require an existing valid config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.cfgFile
			if path == "" {
				path = cli.DefaultConfigFile
			}
			if _, err := os.Stat(path); err == nil && !force {
				return qxerrors.Usage("qxad config init --force (" + path + " exists)")
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return qxerrors.SystemFailure("stat "+path, err)
			}

			cfg := cli.DefaultConfig()
			cfg.Requires = ">= " + cli.Version
			if err := cfg.SaveConfig(path); err != nil {
				return qxerrors.SystemFailure("write "+path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "requires       = %q\n", o.cfg.Requires)
			fmt.Fprintf(out, "lexer.pe       = %v\n", o.cfg.Lexer.PEDefault)
			fmt.Fprintf(out, "output.format  = %s\n", o.cfg.Output.Format)
			fmt.Fprintf(out, "output.color   = %v\n", o.cfg.Output.Color)
			fmt.Fprintf(out, "server.addr    = %s\n", o.cfg.Server.Addr)
			fmt.Fprintf(out, "server.http3   = %v\n", o.cfg.Server.HTTP3)
			fmt.Fprintf(out, "server.selfsig = %v\n", o.cfg.Server.SelfSigned)
			fmt.Fprintf(out, "log.verbose    = %v\n", o.cfg.Log.Verbose)
			fmt.Fprintf(out, "log.debug      = %v\n", o.cfg.Log.Debug)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
