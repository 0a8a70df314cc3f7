// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are defined declaratively and registered through type-safe handlers.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to an actions.Service method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "dnd5e_get_ability_score_models")
	Name string

	// Method is the service method name (e.g., "GetAbilityScoreModels")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (reference, character, etc.)
	Category string

	// Resource is the API resource the tool reads (ability-scores, backgrounds)
	Resource string

	// ReadOnly indicates the tool doesn't modify upstream state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
