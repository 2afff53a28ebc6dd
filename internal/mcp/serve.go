package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport for local agent integrations.
func ServeStdio(ctx context.Context, srv *server.MCPServer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	stdio := server.NewStdioServer(srv)
	logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeSSE runs the MCP server over HTTP SSE on addr until ctx is cancelled.
// Events stream from /sse and client messages post to /messages.
func ServeSSE(ctx context.Context, srv *server.MCPServer, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	sse := server.NewSSEServer(srv,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/messages"),
	)

	logger.InfoContext(ctx, "mcp server listening on sse", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := sse.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp sse server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "mcp server shutting down")
		if err := sse.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp sse server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
