package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qxad-lang/qxad/internal/ast"
	"github.com/qxad-lang/qxad/internal/cli"
	qxerrors "github.com/qxad-lang/qxad/internal/errors"
	"github.com/qxad-lang/qxad/internal/frontend"
	"github.com/qxad-lang/qxad/internal/position"
)

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.qx>",
		Short: "Parse a source file and print its syntax tree",
		Long: `Parse a source file and print its syntax tree.

Each function records whether partial evaluation was active when its
parameter list closed. Parsing stops at the first error, which is printed
with the offending source line.`,
		Args: cobra.ExactArgs(1),
		RunE: o.runParse,
	}
}

func (o *options) runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := cli.ValidateSourcePath(path); err != nil {
		return err
	}
	src, err := frontend.ReadSource(path)
	if err != nil {
		return err
	}

	program, err := frontend.Parse(src, o.frontendOptions(path))
	if err != nil {
		out := cmd.ErrOrStderr()
		if o.cfg.Output.Format != cli.FormatText {
			out = cmd.OutOrStdout()
		}
		if werr := o.renderer().WriteError(out, position.NewSourceFile(path, src), err); werr != nil {
			return werr
		}
		return reportedError{qxerrors.SyntaxError(path, err)}
	}

	stats := ast.Collect(program)
	o.logger.Info("parsed %s: %d functions, %d statements, %d quantum ops",
		path, stats.Functions, stats.Statements, stats.QuantumOps)
	return o.renderer().WriteProgram(cmd.OutOrStdout(), program)
}
