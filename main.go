// D&D 5e MCP Server - A Model Context Protocol server for D&D 5th edition
// reference data. Provides tools for ability scores and character backgrounds.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/olgasafonova/dnd5e-mcp-server/internal/actions"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/config"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/dnd5e"
	"github.com/spf13/cobra"
)

const (
	ServerName    = "dnd5e-mcp-server"
	ServerVersion = "1.0.0"
)

// recoverPanic logs a panic instead of crashing the process
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

// flags are the persistent command-line overrides for the environment config.
type flags struct {
	host     string
	logLevel string
	timeout  time.Duration
	httpAddr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           ServerName,
		Short:         "MCP server for D&D 5e ability scores and backgrounds",
		Long:          `Serves D&D 5th edition reference data from the dnd5eapi.co REST API over the Model Context Protocol. Without a subcommand it runs the MCP server.`,
		Version:       ServerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeCmd(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.host, "host", "", "D&D 5e API host (overrides DND5E_API_HOST)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	pf.DurationVar(&f.timeout, "timeout", 0, "HTTP timeout for upstream requests (overrides DND5E_HTTP_TIMEOUT)")
	root.Flags().StringVar(&f.httpAddr, "http", "", "Serve MCP over streamable HTTP on this address instead of stdio (overrides MCP_HTTP_ADDR)")

	root.AddCommand(newServeCmd(f))
	root.AddCommand(newAbilitiesCmd(f))
	root.AddCommand(newBackgroundsCmd(f))

	return root
}

// loadConfig reads the environment and applies any flags the user set.
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("host") {
		cfg.APIHost = f.host
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTPTimeout = f.timeout
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTPAddr = f.httpAddr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger logs to w (stderr in production; stdout is used for MCP protocol)
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// newService wires an actions.Service whose factory opens a fresh API client per call.
func newService(cfg config.Config, logger *slog.Logger) *actions.Service {
	factory := actions.NewDefaultFactory(
		dnd5e.WithHost(cfg.APIHost),
		dnd5e.WithTimeout(cfg.HTTPTimeout),
		dnd5e.WithUserAgent(cfg.UserAgent),
		dnd5e.WithLogger(logger),
	)
	return actions.NewService(factory, logger)
}
