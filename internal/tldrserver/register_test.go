package tldrserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

type stubDirectory struct{}

func (stubDirectory) ListTracks(context.Context, string) ([]engine.CaptionTrack, error) {
	return []engine.CaptionTrack{{LanguageCode: "en", LanguageName: "English"}}, nil
}

func (stubDirectory) FetchSegments(_ context.Context, _ string, lang string) ([]engine.Segment, error) {
	if lang != "en" {
		return nil, engine.ErrTrackNotFound
	}
	return []engine.Segment{{Text: "Never"}, {Text: "gonna"}}, nil
}

type stubGenerator struct {
	models []string
}

func (g stubGenerator) ListModels(context.Context) ([]string, error) {
	if len(g.models) == 0 {
		return nil, errors.New("connection refused")
	}
	return g.models, nil
}

func (stubGenerator) Generate(_ context.Context, model, _ string) (engine.Completion, error) {
	s := "Summary by " + model
	return engine.Completion{Text: &s}, nil
}

type stubMetadata struct{}

func (stubMetadata) Metadata(context.Context, string) (engine.VideoMetadata, error) {
	return engine.VideoMetadata{Title: "Never Gonna Give You Up"}, nil
}

func connect(t *testing.T, gen stubGenerator) *mcp.ClientSession {
	t.Helper()
	engine.InitCache("", time.Minute, 10, time.Minute)

	orch := engine.NewOrchestrator(engine.OrchestratorConfig{
		Captions:          stubDirectory{},
		Backend:           func(string) engine.TextGenerator { return gen },
		ModelPreference:   "llama",
		GenerationTimeout: time.Second,
	})
	server := mcp.NewServer(&mcp.Implementation{Name: "go_tldr", Version: "test"}, nil)
	RegisterTools(server, Deps{
		Orchestrator: orch,
		Metadata:     engine.NewMetadataService(stubMetadata{}, orch.Captions()),
		Backend:      engine.BackendOllama,
	})

	ctx := context.Background()
	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func call[T any](t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s returned an error: %+v", name, res.Content)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestRegisterToolsListsAll(t *testing.T) {
	cs := connect(t, stubGenerator{models: []string{"llama3"}})

	res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, ToolNames, names)
}

func TestVideoSummaryTool(t *testing.T) {
	cs := connect(t, stubGenerator{models: []string{"mistral", "llama3.2:3b"}})

	out := call[engine.VideoSummaryOutput](t, cs, "video_summary", map[string]any{
		"video":    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"language": "en",
	})
	assert.Empty(t, out.Error)
	assert.Equal(t, "dQw4w9WgXcQ", out.VideoID)
	assert.Equal(t, "llama3.2:3b", out.Model)
	assert.Equal(t, "Summary by llama3.2:3b", out.Summary)
	assert.Equal(t, "Never gonna", out.Transcript)
	assert.NotEmpty(t, out.RequestID)
}

func TestVideoSummaryToolInlineFailure(t *testing.T) {
	cs := connect(t, stubGenerator{models: []string{"llama3"}})

	out := call[engine.VideoSummaryOutput](t, cs, "video_summary", map[string]any{
		"video":    "dQw4w9WgXcQ",
		"language": "fr",
	})
	assert.Equal(t, engine.StageTranscript, out.Stage)
	assert.Equal(t, engine.KindLanguageNotFound, out.Kind)
	assert.Equal(t, engine.KindLanguageNotFound.Reason(), out.Error)
	assert.Empty(t, out.Summary)
}

func TestVideoTranscriptTool(t *testing.T) {
	cs := connect(t, stubGenerator{})

	out := call[engine.VideoSummaryOutput](t, cs, "video_transcript", map[string]any{"video": "dQw4w9WgXcQ"})
	assert.Empty(t, out.Error)
	assert.Equal(t, "Never gonna", out.Transcript)
	assert.Equal(t, "en", out.Language)
}

func TestVideoMetadataTool(t *testing.T) {
	cs := connect(t, stubGenerator{})

	out := call[engine.VideoMetadataOutput](t, cs, "video_metadata", map[string]any{"video": "https://youtu.be/dQw4w9WgXcQ"})
	assert.Equal(t, "Never Gonna Give You Up", out.Title)
	assert.Equal(t, []engine.CaptionTrack{{LanguageCode: "en", LanguageName: "English"}}, out.Languages)

	bad := call[engine.VideoMetadataOutput](t, cs, "video_metadata", map[string]any{"video": "nope"})
	assert.Equal(t, engine.KindInvalidVideoID, bad.Kind)
	assert.Equal(t, engine.StageResolution, bad.Stage)
}

func TestGenerationTools(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		cs := connect(t, stubGenerator{models: []string{"gemma", "llama3"}})

		models := call[engine.GenerationModelsOutput](t, cs, "generation_models", map[string]any{})
		assert.Equal(t, []string{"gemma", "llama3"}, models.Models)
		assert.Equal(t, "llama3", models.Default)
		assert.Equal(t, engine.BackendOllama, models.Backend)

		health := call[engine.GenerationHealthOutput](t, cs, "generation_health", map[string]any{
			"generation_url": "http://gpu-box:11434",
		})
		assert.True(t, health.Healthy)
		assert.Equal(t, 2, health.Models)
		assert.Equal(t, "http://gpu-box:11434", health.Location)
	})

	t.Run("unreachable", func(t *testing.T) {
		cs := connect(t, stubGenerator{})

		models := call[engine.GenerationModelsOutput](t, cs, "generation_models", map[string]any{})
		assert.Empty(t, models.Models)
		assert.Equal(t, engine.KindNoModelsAvailable, models.Kind)

		health := call[engine.GenerationHealthOutput](t, cs, "generation_health", map[string]any{})
		assert.False(t, health.Healthy)
		assert.NotEmpty(t, health.Error)
	})
}
