package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	http3 "github.com/quic-go/quic-go/http3"

	"github.com/qxad-lang/qxad/internal/cli"
	qxerrors "github.com/qxad-lang/qxad/internal/errors"
)

const shutdownTimeout = 5 * time.Second

// Server runs the handler over TCP and, when configured, HTTP/3 on the
// same address.
type Server struct {
	cfg     cli.ServerConfig
	handler http.Handler
	logger  *cli.Logger
}

// New creates a server
func New(cfg cli.ServerConfig, handler http.Handler, logger *cli.Logger) *Server {
	return &Server{cfg: cfg, handler: handler, logger: logger}
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return qxerrors.SystemFailure("listen "+s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	tlsCfg, err := s.tlsConfig(ln.Addr())
	if err != nil {
		_ = ln.Close()
		return err
	}

	if s.cfg.HTTP3 {
		if tlsCfg == nil {
			_ = ln.Close()
			return qxerrors.ConfigInvalid("server", errors.New("http3 requires cert_file and key_file, or self_signed"))
		}
		// the UDP side takes the port the TCP listener actually bound
		stop, err := s.listenHTTP3(ln.Addr().String(), tlsCfg)
		if err != nil {
			_ = ln.Close()
			return qxerrors.SystemFailure("listen udp "+ln.Addr().String(), err)
		}
		defer stop()
	}

	srv := &http.Server{Handler: s.handler, TLSConfig: tlsCfg, ReadHeaderTimeout: 10 * time.Second}
	errC := make(chan error, 1)
	go func() {
		if tlsCfg != nil {
			errC <- srv.ServeTLS(ln, "", "")
		} else {
			errC <- srv.Serve(ln)
		}
	}()
	s.logger.Info("serving HTTP on %s (tls=%v)", ln.Addr(), tlsCfg != nil)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return qxerrors.SystemFailure("serve", err)
	}
}

// listenHTTP3 serves the handler over QUIC on the UDP address addr.
// The returned func closes the server and waits briefly for it to exit.
func (s *Server) listenHTTP3(addr string, tlsCfg *tls.Config) (func(), error) {
	pc, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, err
	}
	h3 := &http3.Server{Handler: s.handler, TLSConfig: http3.ConfigureTLSConfig(tlsCfg)}

	exited := make(chan struct{})
	go func() {
		defer close(exited)
		if err := h3.Serve(pc); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Debug("http3: %v", err)
		}
	}()
	s.logger.Info("serving HTTP/3 on udp %s", pc.LocalAddr())

	return func() {
		_ = h3.Close()
		_ = pc.Close()
		select {
		case <-exited:
		case <-time.After(time.Second):
		}
	}, nil
}
