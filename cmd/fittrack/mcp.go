package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/multierr"

	fitmcp "github.com/meltforce/fittrack/internal/mcp"
	"github.com/meltforce/fittrack/internal/server"
)

func runMCP(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "mcp")
	httpMode := fs.Bool("http", false, "serve streamable HTTP instead of stdio")
	addr := fs.String("addr", a.cfg.Server.Addr(), "listen address for -http without tailscale")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mcpSrv := fitmcp.New(a.client, a.store, a.id, Version, a.log)

	if !*httpMode {
		a.log.Info("MCP server on stdio", "version", Version, "user", a.id.UserID)
		err := mcpserver.NewStdioServer(mcpSrv).Listen(ctx, a.in, a.out)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)
	srv := server.New(streamable, a.cfg.Auth.APIKey, Version, a.log)

	// Listen on the tailnet when enabled, otherwise on addr.
	var listener net.Listener
	var err error
	if a.ts != nil {
		listener, err = a.ts.Listen("tcp", ":80")
		if err != nil {
			return fmt.Errorf("tsnet listen: %w", err)
		}
		a.log.Info("MCP server starting", "hostname", a.cfg.Tailscale.Hostname, "path", server.MCPPath)
	} else {
		listener, err = net.Listen("tcp", *addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", *addr, err)
		}
		a.log.Info("MCP server starting", "addr", listener.Addr().String(), "path", server.MCPPath)
	}
	if a.cfg.Auth.APIKey == "" {
		a.log.Warn("auth.api_key is empty, the MCP endpoint accepts any caller")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return multierr.Combine(
		streamable.Shutdown(shutdownCtx),
		httpSrv.Shutdown(shutdownCtx),
	)
}
