package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/actions"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/config"
	"github.com/olgasafonova/dnd5e-mcp-server/tools"
	"github.com/olgasafonova/dnd5e-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const serverInstructions = `D&D 5e MCP Server provides read-only access to D&D 5th edition reference data from dnd5eapi.co.

Available tools:
- dnd5e_get_ability_score_models: All six ability scores keyed by index (str, dex, con, int, wis, cha)
- dnd5e_get_background_models: Character backgrounds keyed by index; set include_details for full records

Results are best effort: entries whose upstream request failed are left out rather than reported as errors.

Configure via environment variables:
- DND5E_API_HOST: API host (default https://www.dnd5eapi.co)
- DND5E_HTTP_TIMEOUT: Upstream request timeout (default 30s)
- MCP_HTTP_ADDR: Serve streamable HTTP on this address instead of stdio`

func newServeCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio, or streamable HTTP with --http)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeCmd(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.httpAddr, "http", "", "Serve MCP over streamable HTTP on this address instead of stdio (overrides MCP_HTTP_ADDR)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, cfg, logger)
}

// runServer blocks until ctx is cancelled or the transport fails.
func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	defer recoverPanic(logger, "serve")

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	server := newMCPServer(newService(cfg, logger), logger)

	logger.Info("Starting D&D 5e MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"api_host", cfg.APIHost,
		"http_addr", cfg.HTTPAddr,
	)

	if cfg.HTTPAddr == "" {
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
	return serveHTTP(ctx, cfg, server, logger)
}

// newMCPServer creates the MCP server with every tool registered.
func newMCPServer(service *actions.Service, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(service, logger).RegisterAll(server)
	return server
}

// newHTTPHandler serves MCP at /mcp behind the security middleware, plus
// /metrics and /health. The returned func releases the middleware.
func newHTTPHandler(server *mcp.Server, cfg config.Config, logger *slog.Logger) (http.Handler, func()) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	secured := NewSecurityMiddleware(mcpHandler, logger, SecurityConfig{
		RateLimit:   cfg.RateLimit,
		MaxBodySize: cfg.MaxBodyBytes,
	})

	mux := http.NewServeMux()
	mux.Handle("/mcp", secured)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","version":"` + ServerVersion + `"}`))
	})
	return mux, secured.Close
}

func serveHTTP(ctx context.Context, cfg config.Config, server *mcp.Server, logger *slog.Logger) error {
	handler, closeHandler := newHTTPHandler(server, cfg, logger)
	defer closeHandler()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http listener")
		logger.Info("Listening for MCP over HTTP", "addr", cfg.HTTPAddr, "endpoint", "/mcp")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
