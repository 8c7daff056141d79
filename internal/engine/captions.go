package engine

import (
	"context"
	"errors"
	"strings"
)

// CaptionClient is the core's boundary to a CaptionDirectory: it maps
// upstream faults to Kinds and turns segments into a transcript.
type CaptionClient struct {
	dir CaptionDirectory
}

// NewCaptionClient wraps dir.
func NewCaptionClient(dir CaptionDirectory) *CaptionClient {
	return &CaptionClient{dir: dir}
}

// ListTracks returns the tracks for videoID in directory order; the first one
// is the natural default.
func (c *CaptionClient) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	metrics.CaptionListRequests.Add(1)
	tracks, err := c.dir.ListTracks(ctx, videoID)
	switch {
	case err == nil:
		if len(tracks) == 0 {
			return nil, newError(KindNoCaptionsAvailable, ErrNoCaptions)
		}
		return tracks, nil
	case errors.Is(err, ErrCaptionsDisabled), errors.Is(err, ErrNoCaptions):
		return nil, newError(KindNoCaptionsAvailable, err)
	case isUnreachable(err):
		return nil, newError(KindUpstreamUnreachable, err)
	default:
		return nil, newError(KindDirectoryUnavailable, err)
	}
}

// FetchTranscript fetches the track for languageCode (exact match) and joins
// its segment texts with single spaces. No segments yields "".
func (c *CaptionClient) FetchTranscript(ctx context.Context, videoID, languageCode string) (string, error) {
	metrics.CaptionFetchRequests.Add(1)
	segs, err := c.dir.FetchSegments(ctx, videoID, languageCode)
	switch {
	case err == nil:
		return JoinSegments(segs), nil
	case errors.Is(err, ErrTrackNotFound), errors.Is(err, ErrNoCaptions):
		return "", newError(KindLanguageNotFound, err)
	case errors.Is(err, ErrCaptionsDisabled):
		return "", newError(KindCaptionsDisabled, err)
	case isUnreachable(err):
		return "", newError(KindUpstreamUnreachable, err)
	default:
		return "", newError(KindTranscriptUnavailable, err)
	}
}

// JoinSegments concatenates cleaned segment texts in order, skipping blanks.
func JoinSegments(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		text := CleanCaptionText(s.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// FindTrack returns the track whose code equals languageCode exactly.
func FindTrack(tracks []CaptionTrack, languageCode string) (CaptionTrack, bool) {
	for _, t := range tracks {
		if t.LanguageCode == languageCode {
			return t, true
		}
	}
	return CaptionTrack{}, false
}
