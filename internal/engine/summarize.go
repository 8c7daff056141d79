package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Stage names the step of the flow that produced a Failure.
type Stage string

const (
	StageResolution       Stage = "resolution"
	StageDirectoryListing Stage = "directory-listing"
	StageTranscript       Stage = "transcript"
	StageModel            Stage = "model"
	StageGeneration       Stage = "generation"
)

// maxDetailRunes caps the opaque upstream detail carried by a Failure.
const maxDetailRunes = 300

// SummaryRequest is one summarize call. Model, Prompt and GenerationURL are optional.
type SummaryRequest struct {
	Video         string // URL or bare video ID
	Language      string
	Model         string
	Prompt        string
	GenerationURL string
}

// Success is the payload of a completed summary.
type Success struct {
	VideoID    string `json:"video_id"`
	Language   string `json:"language"`
	Model      string `json:"model,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Transcript string `json:"transcript"`
}

// Failure is a terminal, request-scoped failure.
type Failure struct {
	Stage  Stage  `json:"stage"`
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Stage, f.Reason, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Stage, f.Reason)
}

// Outcome holds exactly one of Success or Failure.
type Outcome struct {
	Success *Success
	Failure *Failure
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Failure == nil && o.Success != nil }

func fail(stage Stage, kind Kind, err error) Outcome {
	f := &Failure{Stage: stage, Kind: kind, Reason: kind.Reason()}
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Detail != "" {
			f.Detail = e.Detail
		} else {
			f.Detail = err.Error()
		}
		f.Detail = TruncateRunes(f.Detail, maxDetailRunes, "…")
	}
	return Outcome{Failure: f}
}

// OrchestratorConfig wires the collaborators of an Orchestrator.
type OrchestratorConfig struct {
	Captions          CaptionDirectory
	Backend           GeneratorFactory
	ModelPreference   string
	GenerationTimeout time.Duration
}

// Orchestrator runs the summarization flow. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	captions *CaptionClient
	models   *ModelClient
	gen      *GenerationClient
	backend  GeneratorFactory
}

// NewOrchestrator builds an Orchestrator from c.
func NewOrchestrator(c OrchestratorConfig) *Orchestrator {
	return &Orchestrator{
		captions: NewCaptionClient(c.Captions),
		models:   NewModelClient(c.ModelPreference),
		gen:      NewGenerationClient(c.GenerationTimeout),
		backend:  c.Backend,
	}
}

// Captions exposes the caption client for callers outside the core flow.
func (o *Orchestrator) Captions() *CaptionClient { return o.captions }

// Summarize resolves the video, fetches its transcript, picks a model, builds
// the prompt and generates the summary. The first failing stage ends the run.
func (o *Orchestrator) Summarize(ctx context.Context, req SummaryRequest) Outcome {
	metrics.SummaryRequests.Add(1)
	lang := NormLang(req.Language)

	tr := o.transcript(ctx, req.Video, lang)
	if !tr.OK() {
		return o.failed(ctx, tr)
	}
	s := tr.Success

	gen := o.backend(strings.TrimSpace(req.GenerationURL))

	model := strings.TrimSpace(req.Model)
	if model == "" {
		m, err := o.models.Default(ctx, gen)
		if err != nil {
			return o.failed(ctx, fail(StageModel, KindNoModelsAvailable, err))
		}
		model = m
	}
	s.Model = model

	prompt := BuildPrompt(s.Transcript, lang, req.Prompt)

	var res GenerationResult
	err := TrackOperation(ctx, "generate:"+model, func(ctx context.Context) error {
		var err error
		res, err = o.gen.Generate(ctx, gen, model, prompt)
		return err
	})
	if err != nil {
		return o.failed(ctx, fail(StageGeneration, KindGenerationFailed, err))
	}
	s.Summary = res.Text

	LoggerFrom(ctx).Info("summary: done",
		slog.String("video", s.VideoID),
		slog.String("lang", lang),
		slog.String("model", model),
		slog.Int("transcript_chars", len(s.Transcript)),
		slog.Int("summary_chars", len(s.Summary)),
	)
	return Outcome{Success: s}
}

// Transcript runs only the resolution and transcript stages.
func (o *Orchestrator) Transcript(ctx context.Context, video, language string) Outcome {
	metrics.TranscriptRequests.Add(1)
	out := o.transcript(ctx, video, NormLang(language))
	if !out.OK() {
		return o.failed(ctx, out)
	}
	return out
}

func (o *Orchestrator) transcript(ctx context.Context, video, lang string) Outcome {
	videoID, ok := ResolveVideoID(video)
	if !ok {
		return fail(StageResolution, KindInvalidVideoID, fmt.Errorf("cannot resolve %q", TruncateRunes(video, 64, "…")))
	}

	tracks, err := o.captions.ListTracks(ctx, videoID)
	if err != nil {
		switch KindOf(err) {
		case KindNoCaptionsAvailable:
			if errors.Is(err, ErrCaptionsDisabled) {
				return fail(StageTranscript, KindCaptionsDisabled, err)
			}
			tracks = nil
		case KindUpstreamUnreachable:
			return fail(StageTranscript, KindUpstreamUnreachable, err)
		default:
			return fail(StageTranscript, KindTranscriptUnavailable, err)
		}
	}
	if _, ok := FindTrack(tracks, lang); !ok {
		return fail(StageTranscript, KindLanguageNotFound, fmt.Errorf("no %q track among %s", lang, trackCodes(tracks)))
	}

	text, err := o.captions.FetchTranscript(ctx, videoID, lang)
	if err != nil {
		return fail(StageTranscript, KindOf(err), err)
	}
	if text == "" {
		return fail(StageTranscript, KindEmptyTranscript, nil)
	}
	return Outcome{Success: &Success{VideoID: videoID, Language: lang, Transcript: text}}
}

// Models lists the models at location and the default the policy would pick.
func (o *Orchestrator) Models(ctx context.Context, location string) ([]string, string, error) {
	gen := o.backend(strings.TrimSpace(location))
	models, err := o.models.ListModels(ctx, gen)
	if err != nil {
		return nil, "", err
	}
	return models, SelectDefaultModel(models, o.models.preference), nil
}

func (o *Orchestrator) failed(ctx context.Context, out Outcome) Outcome {
	f := out.Failure
	metrics.Failures.Add(1)
	LoggerFrom(ctx).Warn("summary: stage failed",
		slog.String("stage", string(f.Stage)),
		slog.String("kind", string(f.Kind)),
		slog.String("detail", f.Detail),
	)
	return out
}

func trackCodes(tracks []CaptionTrack) string {
	if len(tracks) == 0 {
		return "[]"
	}
	codes := make([]string, len(tracks))
	for i, t := range tracks {
		codes[i] = t.LanguageCode
	}
	return "[" + strings.Join(codes, ", ") + "]"
}
