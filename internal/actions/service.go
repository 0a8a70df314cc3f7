// Package actions builds the ability score and background model maps that the
// MCP tools and the CLI return.
package actions

import (
	"context"
	"log/slog"

	"github.com/olgasafonova/dnd5e-mcp-server/internal/dnd5e"
	"github.com/olgasafonova/dnd5e-mcp-server/metrics"
)

//go:generate mockgen -destination=mock/mock_client.go -package=actionsmock github.com/olgasafonova/dnd5e-mcp-server/internal/actions Client

// Client is the subset of the D&D 5e API the actions call.
// *dnd5e.Client satisfies it.
type Client interface {
	GetAbilityScore(ctx context.Context, index string) (*dnd5e.AbilityScore, error)
	ListBackgrounds(ctx context.Context) (*dnd5e.APIReferenceList, error)
	GetBackground(ctx context.Context, index string) (*dnd5e.Background, error)
	Close()
}

// ClientFactory opens a new client connection. Each action call uses exactly
// one client and closes it before returning.
type ClientFactory func() Client

// Models maps an entity index to its fields as the API returned them.
type Models map[string]map[string]any

// Service runs the fetch actions.
type Service struct {
	newClient ClientFactory
	logger    *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(newClient ClientFactory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{newClient: newClient, logger: logger}
}

// NewDefaultFactory returns a factory producing real API clients with opts.
func NewDefaultFactory(opts ...dnd5e.ClientOption) ClientFactory {
	return func() Client {
		return dnd5e.NewClient(opts...)
	}
}

// GetAbilityScoreModels fetches the six ability scores one by one. A score
// whose request fails is logged and left out; the call itself never fails.
func (s *Service) GetAbilityScoreModels(ctx context.Context) Models {
	client := s.newClient()
	defer client.Close()

	models := make(Models, len(dnd5e.AbilityScoreIndexes))
	for _, index := range dnd5e.AbilityScoreIndexes {
		score, err := client.GetAbilityScore(ctx, index)
		if err != nil {
			s.logger.Error("Failed to fetch ability score", "index", index, "error", err)
			continue
		}

		m, err := score.ToMap()
		if err != nil {
			s.logger.Error("Failed to convert ability score", "index", index, "error", err)
			continue
		}
		models[index] = m
	}

	metrics.SetActionEntries("get_ability_score_models", len(models))
	return models
}

// GetBackgroundModels lists all backgrounds in a single request and keys the
// summaries by index. Any failure is logged and yields an empty map.
func (s *Service) GetBackgroundModels(ctx context.Context) Models {
	client := s.newClient()
	defer client.Close()

	models, ok := s.listBackgrounds(ctx, client)
	if !ok {
		models = Models{}
	}

	metrics.SetActionEntries("get_background_models", len(models))
	return models
}

// GetBackgroundModelsWithDetails lists the backgrounds and then fetches each
// one's full record. When a detail request fails the summary is kept.
func (s *Service) GetBackgroundModelsWithDetails(ctx context.Context) Models {
	client := s.newClient()
	defer client.Close()

	models, ok := s.listBackgrounds(ctx, client)
	if !ok {
		metrics.SetActionEntries("get_background_models_with_details", 0)
		return Models{}
	}

	for index := range models {
		background, err := client.GetBackground(ctx, index)
		if err != nil {
			s.logger.Warn("Failed to fetch background details, keeping summary", "index", index, "error", err)
			continue
		}

		m, err := background.ToMap()
		if err != nil {
			s.logger.Warn("Failed to convert background details, keeping summary", "index", index, "error", err)
			continue
		}
		models[index] = m
	}

	metrics.SetActionEntries("get_background_models_with_details", len(models))
	return models
}

// listBackgrounds returns false when the listing or any conversion fails, so
// the caller never sees a partial list.
func (s *Service) listBackgrounds(ctx context.Context, client Client) (Models, bool) {
	list, err := client.ListBackgrounds(ctx)
	if err != nil {
		s.logger.Error("Failed to list backgrounds", "error", err)
		return nil, false
	}

	models := make(Models, len(list.Results))
	for i := range list.Results {
		ref := &list.Results[i]
		if ref.Index == "" {
			s.logger.Warn("Skipping background without index", "position", i)
			continue
		}
		m, err := ref.ToMap()
		if err != nil {
			s.logger.Error("Failed to convert background", "index", ref.Index, "error", err)
			return nil, false
		}
		models[ref.Index] = m
	}
	return models, true
}
