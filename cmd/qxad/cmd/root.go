package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qxad-lang/qxad/internal/cli"
	qxerrors "github.com/qxad-lang/qxad/internal/errors"
	"github.com/qxad-lang/qxad/internal/frontend"
)

const usageLine = "qxad <file" + cli.SourceExt + ">"

// options holds the global flags and the state derived from them
type options struct {
	cfgFile string
	verbose bool
	debug   bool
	format  string
	color   bool
	noPE    bool

	cfg    *cli.Config
	logger *cli.Logger
}

// reportedError marks a failure whose diagnostics were already written
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Reported reports whether err was already shown to the user
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// Execute runs the qxad command tree
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the qxad command tree
func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   usageLine,
		Short: "qxad - quantum-aware lexer and parser front end",
		Long: `qxad tokenizes and parses qxad source files.

Gate calls such as H(q); are recognized as single quantum operations and,
while partial evaluation is on, adjacent self-inverse pairs (H, X, Y, Z on
the same qubit) cancel before the parser sees them. The pragmas #[pe] and
#[static] turn partial evaluation on; #[nope] and #[dynamic] turn it off.

Given a file, qxad prints its token stream one token per line.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		RunE:              o.runTokens,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default: ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&o.debug, "debug", false, "debug output")
	flags.StringVar(&o.format, "format", "", "output format: text, json or yaml")
	flags.BoolVar(&o.color, "color", false, "colorize text output")
	flags.BoolVar(&o.noPE, "no-pe", false, "start with partial evaluation disabled")

	rootCmd.AddCommand(
		newParseCmd(o),
		newWatchCmd(o),
		newServeCmd(o),
		newVersionCmd(),
		newConfigCmd(o),
	)
	return rootCmd
}

// setup loads the config file and applies flag overrides
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	path := o.cfgFile
	if path == "" {
		path = cli.DefaultConfigFile
	}
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbose = o.verbose
	}
	if flags.Changed("debug") {
		cfg.Log.Debug = o.debug
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = o.color
	}
	if o.noPE {
		cfg.Lexer.PEDefault = false
	}
	if err := cfg.Validate(); err != nil {
		return qxerrors.ConfigInvalid("flags", err)
	}

	o.cfg = cfg
	o.logger = cli.NewLoggerTo(cmd.ErrOrStderr(), cfg.Log.Verbose, cfg.Log.Debug)
	o.logger.Debug("config %s: %+v", path, *cfg)
	return nil
}

func (o *options) renderer() *frontend.Renderer {
	return frontend.NewRenderer(o.cfg.Output.Format, o.cfg.Output.Color)
}

func (o *options) frontendOptions(path string) frontend.Options {
	opts := frontend.DefaultOptions()
	opts.Filename = path
	opts.PE = o.cfg.Lexer.PEDefault
	return opts
}

// runTokens prints the token stream of a single source file. A missing
// argument or a wrong extension is reported without failing.
func (o *options) runTokens(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(cmd.OutOrStdout(), qxerrors.Usage(usageLine).Message)
		return nil
	}

	path := args[0]
	if err := cli.ValidateSourcePath(path); err != nil {
		var se *qxerrors.StandardError
		if errors.As(err, &se) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", se.Message)
		}
		return nil
	}

	src, err := frontend.ReadSource(path)
	if err != nil {
		return err
	}
	o.logger.Info("tokenizing %s (%d bytes, pe=%v)", path, len(src), o.cfg.Lexer.PEDefault)
	return o.renderer().WriteTokens(cmd.OutOrStdout(), frontend.Tokenize(src, o.frontendOptions(path)))
}
