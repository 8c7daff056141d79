package engine

import (
	"context"
	"errors"
	"net"
)

// --- Caption Directory Service ---

// CaptionTrack is one language offered for a video.
type CaptionTrack struct {
	LanguageCode string `json:"code"`
	LanguageName string `json:"name"`
}

// Segment is one timed caption line. Only Text is used downstream.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// CaptionDirectory lists and fetches caption tracks for a video.
// Implementations report ErrCaptionsDisabled, ErrNoCaptions and
// ErrTrackNotFound (wrapped is fine); anything else is an upstream fault.
type CaptionDirectory interface {
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	FetchSegments(ctx context.Context, videoID, languageCode string) ([]Segment, error)
}

// --- Text Generation Service ---

// Completion is the raw reply of a generation call.
// Text is nil when the service omitted the text field.
type Completion struct {
	Text *string
}

// TextGenerator lists models and generates text at one service location.
type TextGenerator interface {
	ListModels(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, model, prompt string) (Completion, error)
}

// GeneratorFactory builds a TextGenerator bound to a service location.
// An empty location means the configured default.
type GeneratorFactory func(location string) TextGenerator

// GenerationResult is the text produced for one prompt.
type GenerationResult struct {
	Text string `json:"text"`
}

// --- Metadata lookup ---

// VideoMetadata is display data for a video, outside the orchestration core.
type VideoMetadata struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MetadataSource returns display metadata for a video.
type MetadataSource interface {
	Metadata(ctx context.Context, videoID string) (VideoMetadata, error)
}

// isUnreachable reports whether err is a network-level fault.
func isUnreachable(err error) bool {
	if errors.Is(err, ErrUnreachable) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
