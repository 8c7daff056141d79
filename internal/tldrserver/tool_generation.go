package tldrserver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/toolutil"
)

func registerGenerationModels(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generation_models",
		Description: "List the models offered by the text generation service, the model video_summary would pick by default, and the named prompt templates available for prompt_name.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.GenerationInput) (*mcp.CallToolResult, engine.GenerationModelsOutput, error) {
		if err := toolutil.Validate(input); err != nil {
			return nil, engine.GenerationModelsOutput{}, err
		}
		ctx, log := toolutil.WithRequestID(ctx, "generation_models")
		override := strings.TrimSpace(input.GenerationURL)

		out := engine.GenerationModelsOutput{
			Backend:  d.Backend,
			Models:   []string{},
			Prompts:  engine.Prompts().Names(),
			Location: d.location(override),
		}
		models, def, err := d.Orchestrator.Models(ctx, override)
		if err != nil {
			log.Warn("generation_models: listing failed", slog.Any("error", err))
			out.Error = engine.KindNoModelsAvailable.Reason()
			out.Kind = engine.KindOf(err)
			return nil, out, nil
		}
		out.Models = models
		out.Default = def
		return nil, out, nil
	})
}

func registerGenerationHealth(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generation_health",
		Description: "Check whether the text generation service answers at its configured location (or generation_url). Healthy means it listed at least one model.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.GenerationInput) (*mcp.CallToolResult, engine.GenerationHealthOutput, error) {
		if err := toolutil.Validate(input); err != nil {
			return nil, engine.GenerationHealthOutput{}, err
		}
		ctx, log := toolutil.WithRequestID(ctx, "generation_health")
		override := strings.TrimSpace(input.GenerationURL)

		out := engine.GenerationHealthOutput{Backend: d.Backend, Location: d.location(override)}
		models, _, err := d.Orchestrator.Models(ctx, override)
		if err != nil {
			log.Info("generation_health: unhealthy", slog.String("location", out.Location), slog.Any("error", err))
			out.Error = err.Error()
			return nil, out, nil
		}
		out.Healthy = true
		out.Models = len(models)
		return nil, out, nil
	})
}
