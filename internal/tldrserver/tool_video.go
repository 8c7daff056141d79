package tldrserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/toolutil"
)

func registerVideoSummary(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_summary",
		Description: "Summarize a YouTube video from its captions. Returns a Markdown summary (short summary, key takeaways, sentiment) in the requested language plus the full transcript. Caption language must match exactly (e.g. en, de, pt-BR). Optional: model, custom prompt template or prompt_name, per-call generation_url. Failures are returned inline with stage and kind.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoSummaryInput) (*mcp.CallToolResult, engine.VideoSummaryOutput, error) {
		if err := toolutil.Validate(input); err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}
		ctx, _ = toolutil.WithRequestID(ctx, "video_summary")

		out := d.Orchestrator.Summarize(ctx, engine.SummaryRequest{
			Video:         input.Video,
			Language:      input.Language,
			Model:         input.Model,
			Prompt:        engine.Prompts().Resolve(input.Prompt, strings.TrimSpace(input.PromptName)),
			GenerationURL: input.GenerationURL,
		})
		return nil, summaryOutput(out, toolutil.RequestID(ctx)), nil
	})
}

func registerVideoTranscript(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_transcript",
		Description: "Fetch the caption transcript of a YouTube video as plain text, without summarizing. Caption language must match exactly (default: en).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoTranscriptInput) (*mcp.CallToolResult, engine.VideoSummaryOutput, error) {
		if err := toolutil.Validate(input); err != nil {
			return nil, engine.VideoSummaryOutput{}, err
		}
		ctx, _ = toolutil.WithRequestID(ctx, "video_transcript")

		out := d.Orchestrator.Transcript(ctx, input.Video, input.Language)
		return nil, summaryOutput(out, toolutil.RequestID(ctx)), nil
	})
}

func registerVideoMetadata(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_metadata",
		Description: "Get a YouTube video's title, thumbnail URL and the caption languages it offers (code and name). Use it to pick a language for video_summary.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoMetadataInput) (*mcp.CallToolResult, engine.VideoMetadataOutput, error) {
		if err := toolutil.Validate(input); err != nil {
			return nil, engine.VideoMetadataOutput{}, err
		}
		ctx, _ = toolutil.WithRequestID(ctx, "video_metadata")
		rid := toolutil.RequestID(ctx)

		info, f := d.Metadata.Lookup(ctx, input.Video)
		if f != nil {
			return nil, engine.VideoMetadataOutput{
				Languages: []engine.CaptionTrack{},
				Error:     f.Reason,
				Stage:     f.Stage,
				Kind:      f.Kind,
				RequestID: rid,
			}, nil
		}
		return nil, engine.VideoMetadataOutput{
			VideoID:      info.VideoID,
			Title:        info.Title,
			ThumbnailURL: info.ThumbnailURL,
			Languages:    info.Languages,
			RequestID:    rid,
		}, nil
	})
}

// summaryOutput flattens an Outcome into the inline-error tool output. The
// engine has already logged the outcome under the request's logger.
func summaryOutput(out engine.Outcome, requestID string) engine.VideoSummaryOutput {
	if f := out.Failure; f != nil {
		return engine.VideoSummaryOutput{
			Error:     f.Reason,
			Stage:     f.Stage,
			Kind:      f.Kind,
			Detail:    f.Detail,
			RequestID: requestID,
		}
	}
	s := out.Success
	return engine.VideoSummaryOutput{
		VideoID:    s.VideoID,
		Language:   s.Language,
		Model:      s.Model,
		Summary:    s.Summary,
		Transcript: s.Transcript,
		RequestID:  requestID,
	}
}
