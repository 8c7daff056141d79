// Package tldrserver exposes the summarization engine as MCP tools.
package tldrserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// Deps are the engine services the tools call into.
type Deps struct {
	Orchestrator *engine.Orchestrator
	Metadata     *engine.MetadataService
	Backend      string // engine.BackendOllama or engine.BackendOpenAI
}

// ToolNames lists the tools registered by RegisterTools, in order.
var ToolNames = []string{
	"video_summary",
	"video_transcript",
	"video_metadata",
	"generation_models",
	"generation_health",
}

// RegisterTools registers all video tools on the given MCP server:
// video_summary, video_transcript, video_metadata, generation_models,
// generation_health.
func RegisterTools(server *mcp.Server, d Deps) {
	registerVideoSummary(server, d)
	registerVideoTranscript(server, d)
	registerVideoMetadata(server, d)
	registerGenerationModels(server, d)
	registerGenerationHealth(server, d)
}

// location is the generation service a request will reach.
func (d Deps) location(override string) string {
	if override != "" {
		return override
	}
	if d.Backend == engine.BackendOpenAI {
		return engine.Cfg.LLMAPIBase
	}
	return engine.Cfg.OllamaURL
}
