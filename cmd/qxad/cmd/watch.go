package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qxad-lang/qxad/internal/cli"
	"github.com/qxad-lang/qxad/internal/frontend"
	"github.com/qxad-lang/qxad/internal/position"
	"github.com/qxad-lang/qxad/internal/watch"
)

func newWatchCmd(o *options) *cobra.Command {
	var parse bool

	cmd := &cobra.Command{
		Use:   "watch <file.qx>",
		Short: "Re-run the front end whenever a source file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.runWatch(ctx, cmd, args[0], parse)
		},
	}
	cmd.Flags().BoolVar(&parse, "parse", false, "print the syntax tree instead of the tokens")
	return cmd
}

func (o *options) runWatch(ctx context.Context, cmd *cobra.Command, path string, parse bool) error {
	if err := cli.ValidateSourcePath(path); err != nil {
		return err
	}

	w, err := watch.New(path, o.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	r := o.renderer()
	o.logger.Info("watching %s", w.Path())

	return w.Run(ctx, func(p string) {
		src, err := frontend.ReadSource(p)
		if err != nil {
			o.logger.Warn("%v", err)
			return
		}
		fmt.Fprintf(out, "== %s ==\n", path)

		opts := o.frontendOptions(path)
		if !parse {
			if err := r.WriteTokens(out, frontend.Tokenize(src, opts)); err != nil {
				o.logger.Error("%v", err)
			}
			return
		}

		program, err := frontend.Parse(src, opts)
		if err != nil {
			_ = r.WriteError(errOut, position.NewSourceFile(path, src), err)
			return
		}
		if err := r.WriteProgram(out, program); err != nil {
			o.logger.Error("%v", err)
		}
	})
}
