package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	qxerrors "github.com/qxad-lang/qxad/internal/errors"
	"github.com/qxad-lang/qxad/internal/server"
)

func newServeCmd(o *options) *cobra.Command {
	var (
		addr     string
		http3    bool
		certFile   string
		keyFile    string
		selfSigned bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the front end over HTTP",
		Long: `Serve the front end over HTTP.

Endpoints:
  POST /v1/tokens   source in the body, token stream as JSON
  POST /v1/ast      source in the body, syntax tree as JSON (422 on parse errors)
  GET  /healthz     liveness

Both POST endpoints accept ?pe=false to start with partial evaluation off.
With --http3 the same handler is also served over QUIC on the UDP port of
the same address; this requires --cert and --key, or --self-signed for a
generated in-memory certificate during development.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scfg := o.cfg.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				scfg.Addr = addr
			}
			if flags.Changed("http3") {
				scfg.HTTP3 = http3
			}
			if flags.Changed("cert") {
				scfg.CertFile = certFile
			}
			if flags.Changed("key") {
				scfg.KeyFile = keyFile
			}
			if flags.Changed("self-signed") {
				scfg.SelfSigned = selfSigned
			}
			if scfg.HTTP3 && !scfg.HasCertFiles() && !scfg.SelfSigned {
				return qxerrors.Usage("qxad serve --http3 (--cert <file> --key <file> | --self-signed)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(o.logger, o.cfg.Lexer.PEDefault)
			return server.New(scfg, handler, o.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8443)")
	cmd.Flags().BoolVar(&http3, "http3", false, "also serve HTTP/3")
	cmd.Flags().StringVar(&certFile, "cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&keyFile, "key", "", "TLS key file")
	cmd.Flags().BoolVar(&selfSigned, "self-signed", false, "generate a self-signed certificate when no --cert/--key are given")
	return cmd
}
