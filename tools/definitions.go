package tools

// AllTools contains all tool specifications for the D&D 5e MCP server.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "dnd5e_get_ability_score_models",
		Method:   "GetAbilityScoreModels",
		Title:    "Get Ability Scores",
		Category: "character",
		Resource: "ability-scores",
		Description: `Fetch all six D&D 5e ability scores (str, dex, con, int, wis, cha).

USE WHEN: User asks "what does Strength do", "which skills use Wisdom", "list the ability scores".

NOT FOR: Character backgrounds (use dnd5e_get_background_models).

PARAMETERS: none

RETURNS: Map of ability index to the full API record (name, full_name, desc, skills, url) plus a count. Scores whose request failed are missing from the map.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "dnd5e_get_background_models",
		Method:   "GetBackgroundModels",
		Title:    "Get Backgrounds",
		Category: "character",
		Resource: "backgrounds",
		Description: `List D&D 5e character backgrounds (acolyte, sage, ...).

USE WHEN: User asks "what backgrounds are there", "show the Acolyte background", "what proficiencies does a background give".

NOT FOR: Ability scores (use dnd5e_get_ability_score_models).

PARAMETERS:
- include_details: Fetch each background's full record with proficiencies, equipment and feature (default false)

RETURNS: Map of background index to its record plus a count. When the listing fails the map is empty.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}

// ToolsByResource returns the tools that read the given API resource.
func ToolsByResource(resource string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Resource == resource {
			out = append(out, spec)
		}
	}
	return out
}

// ToolsByCategory returns the tools in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}
