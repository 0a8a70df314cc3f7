package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/olgasafonova/dnd5e-mcp-server/internal/actions"
	"github.com/spf13/cobra"
)

func newAbilitiesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "abilities",
		Short: "Fetch all six ability scores once and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, f, func(ctx context.Context, s *actions.Service) actions.Models {
				return s.GetAbilityScoreModels(ctx)
			})
		},
	}
}

func newBackgroundsCmd(f *flags) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "backgrounds",
		Short: "List character backgrounds once and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, f, func(ctx context.Context, s *actions.Service) actions.Models {
				if details {
					return s.GetBackgroundModelsWithDetails(ctx)
				}
				return s.GetBackgroundModels(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Fetch each background's full record")
	return cmd
}

// runFetch runs one action and writes its models to the command's stdout.
// Upstream failures only show up in the log on stderr.
func runFetch(cmd *cobra.Command, f *flags, fetch func(context.Context, *actions.Service) actions.Models) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.SlogLevel())

	models := fetch(cmd.Context(), newService(cfg, logger))
	return writeJSON(cmd.OutOrStdout(), models)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
