// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
)

// Run serves the provisioning tools over stdio until ctx is canceled or in
// reaches EOF. Cancellation yields an error wrapping ctx.Err().
//
// Server Lifecycle:
//  1. Build the MCP server with the default tools and resources
//  2. Start the stdio server on in/out
//  3. Wait for either a server error or context cancellation
func Run(ctx context.Context, cfg *config.Config, version string, in io.Reader, out io.Writer, log logger.Logger) error {
	s, err := NewServerBuilder().
		WithConfig(cfg).
		WithVersion(version).
		WithLogger(log).
		WithDefaultTools().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	stdioServer := server.NewStdioServer(s)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("server shutdown: %w", ctx.Err())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
