package actions

import "context"

// MCP Tool wrapper methods
// These wrap the actions with Args/Result types for MCP integration. They
// never return an error: failures surface as missing entries.

// GetAbilityScoreModelsMCP is the MCP wrapper for GetAbilityScoreModels
func (s *Service) GetAbilityScoreModelsMCP(ctx context.Context, _ GetAbilityScoreModelsArgs) (AbilityScoreModelsResult, error) {
	models := s.GetAbilityScoreModels(ctx)
	return AbilityScoreModelsResult{AbilityScores: models, Count: len(models)}, nil
}

// GetBackgroundModelsMCP is the MCP wrapper for GetBackgroundModels
func (s *Service) GetBackgroundModelsMCP(ctx context.Context, args GetBackgroundModelsArgs) (BackgroundModelsResult, error) {
	var models Models
	if args.IncludeDetails {
		models = s.GetBackgroundModelsWithDetails(ctx)
	} else {
		models = s.GetBackgroundModels(ctx)
	}
	return BackgroundModelsResult{Backgrounds: models, Count: len(models)}, nil
}
