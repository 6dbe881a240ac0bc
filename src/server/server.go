// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

const (
	// DefaultBody is the response body when Options.Body is empty.
	DefaultBody = "Hi"

	// ShutdownTimeout bounds graceful shutdown after the context is canceled.
	ShutdownTimeout = 5 * time.Second
)

// Options configures the listener.
type Options struct {
	Addr        string          // listen address, e.g. ":3000"
	Certificate tls.Certificate // leaf with chain
	Body        string          // static response body
}

// Server is a single static-response HTTPS listener.
type Server struct {
	app  *fiber.App
	opts Options
	log  logger.Logger
}

// New builds the Fiber app. A nil log discards output.
func New(opts Options, log logger.Logger) *Server {
	if opts.Body == "" {
		opts.Body = DefaultBody
	}
	if log == nil {
		log = logger.NewCLILogger("", true)
	}

	app := fiber.New(fiber.Config{
		AppName:               "local-ssl-server",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	s := &Server{app: app, opts: opts, log: log}

	app.Use(recover.New())
	app.Use(s.handle)

	return s
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString(s.opts.Body)
}

// TLSConfig returns the server TLS configuration.
func (s *Server) TLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{s.opts.Certificate},
	}
}

// Serve binds Options.Addr and serves until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.opts.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener wraps ln with TLS and serves until ctx is canceled or the
// listener fails. Cancellation triggers a graceful shutdown bounded by
// ShutdownTimeout and returns nil.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	tlsLn := tls.NewListener(ln, s.TLSConfig())

	s.log.Infof("Listening on https://%s", displayAddr(ln.Addr()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Listener(tlsLn) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	err := s.app.ShutdownWithContext(shutdownCtx)
	// Serve may not have registered the listener yet.
	_ = tlsLn.Close()
	<-errCh

	if err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.log.Printf("Server stopped")
	return nil
}

// displayAddr renders wildcard listen addresses as localhost.
func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && (tcp.IP == nil || tcp.IP.IsUnspecified()) {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
