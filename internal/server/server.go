// Package server wraps the ece/api/handlers HTTP endpoints into a
// process with graceful shutdown, optional TLS, and optional
// per-address rate limiting.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server is an HTTP front end for the core's encrypt/decrypt/save_key
// operations.
type Server struct {
	addr    string
	handler http.Handler

	useTLS            bool
	certPath, keyPath string

	limiter *limiterGroup
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithTLS serves over TLS using the given certificate and key files.
func WithTLS(certPath, keyPath string) Option {
	return func(s *Server) {
		s.useTLS = true
		s.certPath = certPath
		s.keyPath = keyPath
	}
}

// WithRateLimit bounds each remote address to rps requests per second,
// with burst as the token bucket size.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = newLimiterGroup(rps, burst)
	}
}

// New builds a Server listening on addr and dispatching to handler.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{addr: addr, handler: handler}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter != nil {
		s.handler = s.limiter.middleware(s.handler)
	}
	return s
}

// Start listens and serves until interrupted, then shuts down
// gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "err", err)
		}
	}()

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	defer func() { _ = lis.Close() }()
	slog.Info("listening", "addr", lis.Addr().String())

	if s.useTLS {
		srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			CipherSuites: []uint16{
				tls.TLS_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			},
		}
		if s.certPath == "" || s.keyPath == "" {
			return fmt.Errorf("no TLS cert or key provided")
		}
		return srv.ServeTLS(lis, s.certPath, s.keyPath)
	}
	return srv.Serve(lis)
}
