package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/projeto/internal/mcp"
	"github.com/rpggio/projeto/internal/transport"
	"github.com/spf13/cobra"
)

var serveMode string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveMode, "mode", "", "Transport: stdio or http (default from transport.mode)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose projeto operations as MCP tools",
	Long: `Serve the projeto tools over MCP.

In stdio mode stdout carries MCP frames and logs go to stderr. In http mode
the server also exposes /health, /metrics and the pending notifications
under /messages.

Examples:
  projeto serve
  projeto serve --mode http`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	mode := a.cfg.Transport.Mode
	if serveMode != "" {
		mode = serveMode
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projetos: a.projetos,
			Messages: a.messages,
		},
		Version: version,
		Logger:  a.logger,
	})

	switch mode {
	case "stdio":
		return runStdioMode(cmd.Context(), a.logger, mcpServer)
	case "http":
		return runHTTPMode(cmd.Context(), a, mcpServer)
	default:
		return fmt.Errorf("unknown transport mode %q", mode)
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, a *app, mcpServer *sdkmcp.Server) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	opts := transport.Options{
		MCP:      mcpHandler,
		Messages: a.messages,
		Gatherer: a.registry,
		Logger:   a.logger,
	}
	if a.cfg.Server.Token != "" {
		opts.Auth = transport.AuthMiddleware(transport.StaticToken(a.cfg.Server.Token))
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "auth", a.cfg.Server.Token != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	return waitForShutdown(a.logger, httpServer)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
