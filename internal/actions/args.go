package actions

// GetAbilityScoreModelsArgs takes no parameters
type GetAbilityScoreModelsArgs struct{}

// AbilityScoreModelsResult is the result of fetching ability scores
type AbilityScoreModelsResult struct {
	AbilityScores Models `json:"ability_scores"`
	Count         int    `json:"count"`
}

// GetBackgroundModelsArgs contains parameters for fetching backgrounds
type GetBackgroundModelsArgs struct {
	IncludeDetails bool `json:"include_details,omitempty" jsonschema:"Fetch each background's full record instead of the list summary (default: false)"`
}

// BackgroundModelsResult is the result of fetching backgrounds
type BackgroundModelsResult struct {
	Backgrounds Models `json:"backgrounds"`
	Count       int    `json:"count"`
}
