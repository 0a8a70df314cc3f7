package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/actions"
	"github.com/olgasafonova/dnd5e-mcp-server/internal/dnd5e"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// upstream fakes the D&D 5e API. The wis score and the sage details fail.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/backgrounds":
			_, _ = w.Write([]byte(`{"count":2,"results":[{"index":"acolyte","name":"Acolyte","url":"/api/backgrounds/acolyte"},{"index":"sage","name":"Sage","url":"/api/backgrounds/sage"}]}`))
		case r.URL.Path == "/api/backgrounds/acolyte":
			_, _ = w.Write([]byte(`{"index":"acolyte","name":"Acolyte","url":"/api/backgrounds/acolyte","feature":{"name":"Shelter of the Faithful","desc":[]}}`))
		case strings.HasPrefix(r.URL.Path, "/api/ability-scores/") && !strings.HasSuffix(r.URL.Path, "/wis"):
			index := strings.TrimPrefix(r.URL.Path, "/api/ability-scores/")
			_, _ = w.Write([]byte(`{"index":"` + index + `","name":"` + strings.ToUpper(index) + `","url":"` + r.URL.Path + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestRegistry(t *testing.T, host string) *HandlerRegistry {
	t.Helper()
	logger := testLogger()
	service := actions.NewService(actions.NewDefaultFactory(dnd5e.WithHost(host), dnd5e.WithLogger(logger)), logger)
	return NewHandlerRegistry(service, logger)
}

// connect registers all tools on a fresh server and returns a connected client session.
func connect(t *testing.T, registry *HandlerRegistry) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	server := mcp.NewServer(&mcp.Implementation{Name: "test-server", Version: "v0.0.1"}, nil)
	registry.RegisterAll(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("connect server: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decodeStructuredContent[T any](t *testing.T, content any) T {
	t.Helper()
	var out T
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("encode structured content: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func TestNewHandlerRegistry(t *testing.T) {
	logger := testLogger()
	service := actions.NewService(actions.NewDefaultFactory(), logger)

	registry := NewHandlerRegistry(service, logger)

	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.service != service {
		t.Error("Registry should hold the service reference")
	}
	if registry.logger != logger {
		t.Error("Registry should hold the logger reference")
	}
}

func TestBuildTool(t *testing.T) {
	registry := newTestRegistry(t, dnd5e.DefaultHost)

	tests := []struct {
		name      string
		spec      ToolSpec
		wantName  string
		wantDesc  string
		wantRO    bool
		wantIdem  bool
		wantDestr bool
		wantOpen  bool
	}{
		{
			name: "read-only tool",
			spec: ToolSpec{
				Name:        "dnd5e_get_ability_score_models",
				Title:       "Get Ability Scores",
				Description: "Fetch all six ability scores",
				Method:      "GetAbilityScoreModels",
				Resource:    "ability-scores",
				ReadOnly:    true,
				Idempotent:  true,
			},
			wantName: "dnd5e_get_ability_score_models",
			wantDesc: "Fetch all six ability scores",
			wantRO:   true,
			wantIdem: true,
		},
		{
			name: "open world tool",
			spec: ToolSpec{
				Name:        "dnd5e_get_background_models",
				Title:       "Get Backgrounds",
				Description: "List backgrounds",
				Method:      "GetBackgroundModels",
				Resource:    "backgrounds",
				OpenWorld:   true,
			},
			wantName: "dnd5e_get_background_models",
			wantDesc: "List backgrounds",
			wantOpen: true,
		},
		{
			name: "destructive tool",
			spec: ToolSpec{
				Name:        "destructive",
				Description: "Overwrites things",
				Destructive: true,
			},
			wantName:  "destructive",
			wantDesc:  "Overwrites things",
			wantDestr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tool.Name, tt.wantName)
			}
			if tool.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", tool.Description, tt.wantDesc)
			}
			if tool.Annotations == nil {
				t.Fatal("Expected annotations")
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("ReadOnlyHint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("IdempotentHint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			if tt.wantDestr && (tool.Annotations.DestructiveHint == nil || !*tool.Annotations.DestructiveHint) {
				t.Error("Expected DestructiveHint to be true")
			}
			if !tt.wantDestr && tool.Annotations.DestructiveHint != nil {
				t.Error("Expected DestructiveHint to be unset")
			}
			if tt.wantOpen && (tool.Annotations.OpenWorldHint == nil || !*tool.Annotations.OpenWorldHint) {
				t.Error("Expected OpenWorldHint to be true")
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	registry := newTestRegistry(t, dnd5e.DefaultHost)

	var err error
	func() {
		defer registry.recoverPanic("test_tool", &err)
		panic("test panic")
	}()

	if err == nil {
		t.Fatal("Expected recovered panic to set an error")
	}
	if !strings.Contains(err.Error(), "test_tool") {
		t.Errorf("error = %q, want tool name", err.Error())
	}
}

func TestLogExecution(t *testing.T) {
	registry := newTestRegistry(t, dnd5e.DefaultHost)
	spec := ToolSpec{Name: "test_tool", Resource: "backgrounds"}

	registry.logExecution(spec,
		actions.GetAbilityScoreModelsArgs{},
		actions.AbilityScoreModelsResult{Count: 6})

	registry.logExecution(spec,
		actions.GetBackgroundModelsArgs{IncludeDetails: true},
		actions.BackgroundModelsResult{Count: 2})
}

func TestAllToolsNotEmpty(t *testing.T) {
	if len(AllTools) == 0 {
		t.Error("AllTools should not be empty")
	}

	for i, spec := range AllTools {
		if spec.Name == "" {
			t.Errorf("Tool %d has empty Name", i)
		}
		if spec.Method == "" {
			t.Errorf("Tool %s has empty Method", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("Tool %s has empty Description", spec.Name)
		}
		if spec.Resource == "" {
			t.Errorf("Tool %s has empty Resource", spec.Name)
		}
		if !spec.ReadOnly || spec.Destructive {
			t.Errorf("Tool %s should be read-only and non-destructive", spec.Name)
		}
	}
}

func TestToolSpecMethods(t *testing.T) {
	knownMethods := map[string]bool{
		"GetAbilityScoreModels": true,
		"GetBackgroundModels":   true,
	}

	for _, spec := range AllTools {
		if !knownMethods[spec.Method] {
			t.Errorf("Tool %s has unknown method: %s", spec.Name, spec.Method)
		}
	}
}

func TestToolsByResource(t *testing.T) {
	for _, resource := range []string{"ability-scores", "backgrounds"} {
		tools := ToolsByResource(resource)
		if len(tools) != 1 {
			t.Errorf("ToolsByResource(%q) returned %d tools, want 1", resource, len(tools))
		}
		for _, tool := range tools {
			if tool.Resource != resource {
				t.Errorf("Tool %s has resource %s, expected %s", tool.Name, tool.Resource, resource)
			}
		}
	}

	if unknown := ToolsByResource("spells"); len(unknown) != 0 {
		t.Errorf("Expected 0 tools for unknown resource, got %d", len(unknown))
	}
}

func TestToolsByCategory(t *testing.T) {
	characterTools := ToolsByCategory("character")
	if len(characterTools) != len(AllTools) {
		t.Errorf("ToolsByCategory(character) = %d tools, want %d", len(characterTools), len(AllTools))
	}
	for _, tool := range characterTools {
		if tool.Category != "character" {
			t.Errorf("Tool %s has category %s, expected character", tool.Name, tool.Category)
		}
	}
}

func TestRegisterAll_ListTools(t *testing.T) {
	session := connect(t, newTestRegistry(t, upstream(t).URL))

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	got := make(map[string]*mcp.Tool, len(result.Tools))
	for _, tool := range result.Tools {
		got[tool.Name] = tool
	}
	for _, spec := range AllTools {
		tool, ok := got[spec.Name]
		if !ok {
			t.Errorf("tool %s not registered", spec.Name)
			continue
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", spec.Name)
		}
	}
}

func TestCallTool_AbilityScores(t *testing.T) {
	session := connect(t, newTestRegistry(t, upstream(t).URL))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dnd5e_get_ability_score_models",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error content: %+v", result.Content)
	}

	output := decodeStructuredContent[actions.AbilityScoreModelsResult](t, result.StructuredContent)
	if output.Count != 5 {
		t.Errorf("Count = %d, want 5", output.Count)
	}
	if _, ok := output.AbilityScores["wis"]; ok {
		t.Error("failed ability score should be omitted")
	}
	if output.AbilityScores["str"]["name"] != "STR" {
		t.Errorf("str = %v", output.AbilityScores["str"])
	}
}

func TestCallTool_Backgrounds(t *testing.T) {
	session := connect(t, newTestRegistry(t, upstream(t).URL))

	tests := []struct {
		name        string
		args        map[string]any
		wantFeature bool
	}{
		{"summary", map[string]any{}, false},
		{"details", map[string]any{"include_details": true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "dnd5e_get_background_models",
				Arguments: tt.args,
			})
			if err != nil {
				t.Fatalf("call tool: %v", err)
			}
			if result.IsError {
				t.Fatalf("tool returned error content: %+v", result.Content)
			}

			output := decodeStructuredContent[actions.BackgroundModelsResult](t, result.StructuredContent)
			if output.Count != 2 {
				t.Fatalf("Count = %d, want 2", output.Count)
			}
			_, hasFeature := output.Backgrounds["acolyte"]["feature"]
			if hasFeature != tt.wantFeature {
				t.Errorf("acolyte has feature = %v, want %v", hasFeature, tt.wantFeature)
			}
			if output.Backgrounds["sage"]["name"] != "Sage" {
				t.Errorf("sage = %v", output.Backgrounds["sage"])
			}
		})
	}
}

func TestCallTool_UpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := down.URL
	down.Close()

	session := connect(t, newTestRegistry(t, host))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dnd5e_get_background_models",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatal("upstream failures should yield an empty result, not a tool error")
	}

	output := decodeStructuredContent[actions.BackgroundModelsResult](t, result.StructuredContent)
	if output.Count != 0 || len(output.Backgrounds) != 0 {
		t.Errorf("expected empty backgrounds, got %+v", output)
	}
}

func TestCallTool_PanicBecomesToolError(t *testing.T) {
	logger := testLogger()
	service := actions.NewService(func() actions.Client { panic("factory exploded") }, logger)
	session := connect(t, NewHandlerRegistry(service, logger))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dnd5e_get_ability_score_models",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error result, got %+v", result)
	}
}
