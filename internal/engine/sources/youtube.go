package sources

// YouTube captions are split across three files by responsibility:
//   youtube.go          : the caption directory (track listing, segment fetch)
//   youtube_innertube.go: player response types, watch page and ANDROID /player
//   youtube_timedtext.go: timedtext XML parsing
// youtube_metadata.go holds the oEmbed lookup used for display metadata.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// YouTube implements engine.CaptionDirectory by scraping the watch page's
// player response and falling back to the ANDROID Innertube player.
type YouTube struct {
	watchURL  string
	playerURL string
}

// YouTubeOption configures a YouTube directory.
type YouTubeOption func(*YouTube)

// WithYouTubeEndpoints overrides the watch page and player endpoints.
func WithYouTubeEndpoints(watchURL, playerURL string) YouTubeOption {
	return func(y *YouTube) {
		y.watchURL = watchURL
		y.playerURL = playerURL
	}
}

// NewYouTube returns a caption directory backed by youtube.com.
func NewYouTube(opts ...YouTubeOption) *YouTube {
	y := &YouTube{watchURL: ytWatchURL, playerURL: ytPlayerURL}
	for _, o := range opts {
		o(y)
	}
	return y
}

var _ engine.CaptionDirectory = (*YouTube)(nil)

// captionTracks returns the caption tracks for videoID. The watch page is
// tried first; the ANDROID player is consulted when the watch page yields no
// tracks or usable rejects them. Watch-page tracks win if the ANDROID player
// has nothing better.
func (y *YouTube) captionTracks(ctx context.Context, videoID string, usable func([]captionTrack) bool) ([]captionTrack, error) {
	engine.IncrYouTubeRequests()

	raw, err := y.watchTracks(ctx, videoID)
	if err == nil && usable(raw) {
		return raw, nil
	}
	reason := err
	if reason == nil {
		reason = errors.New("watch page: no server-fetchable track")
	}
	slog.Warn("youtube: watch page unusable, trying android player",
		slog.String("id", videoID), slog.Any("error", reason))

	araw, aerr := y.androidTracks(ctx, videoID)
	switch {
	case aerr == nil && (raw == nil || usable(araw)):
		return araw, nil
	case err == nil:
		return raw, nil
	case isCaptionVerdict(aerr):
		return nil, aerr
	case isCaptionVerdict(err):
		return nil, err
	}
	return nil, fmt.Errorf("%v; %w", err, aerr)
}

func (y *YouTube) watchTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pr, err := y.playerFromWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !pr.playable() {
		return nil, fmt.Errorf("watch page: not playable (%s)", pr.PlayabilityStatus.Status)
	}
	return pr.tracks()
}

func (y *YouTube) androidTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	pr, err := y.playerFromAndroid(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return pr.tracks()
}

// isCaptionVerdict reports whether err says the video has no usable captions,
// as opposed to the player being unreachable.
func isCaptionVerdict(err error) bool {
	return errors.Is(err, engine.ErrCaptionsDisabled) || errors.Is(err, engine.ErrNoCaptions)
}

func anyTracks([]captionTrack) bool { return true }

// ListTracks returns one track per language code in player order. When a
// language has both a manual and an auto-generated track, the manual one's
// name is reported.
func (y *YouTube) ListTracks(ctx context.Context, videoID string) ([]engine.CaptionTrack, error) {
	raw, err := y.captionTracks(ctx, videoID, anyTracks)
	if err != nil {
		return nil, err
	}

	out := make([]engine.CaptionTrack, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, t := range raw {
		name := t.Name.String()
		if name == "" {
			name = t.LanguageCode
		}
		if i, seen := index[t.LanguageCode]; seen {
			if t.Kind != "asr" {
				out[i].LanguageName = name
			}
			continue
		}
		index[t.LanguageCode] = len(out)
		out = append(out, engine.CaptionTrack{LanguageCode: t.LanguageCode, LanguageName: name})
	}
	return out, nil
}

// FetchSegments downloads the segments of the track whose code equals
// languageCode exactly. Manual tracks win over auto-generated ones. When the
// watch page has no server-fetchable track for the code, the ANDROID player's
// tracks are used if they have one.
func (y *YouTube) FetchSegments(ctx context.Context, videoID, languageCode string) ([]engine.Segment, error) {
	raw, err := y.captionTracks(ctx, videoID, func(tracks []captionTrack) bool {
		t, ok := pickTrack(tracks, languageCode)
		return ok && !needsPoToken(t.BaseURL)
	})
	if err != nil {
		return nil, err
	}
	track, ok := pickTrack(raw, languageCode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrTrackNotFound, languageCode)
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// pickTrack selects the track for code, preferring manual over auto-generated
// and server-fetchable over PoToken-bound.
func pickTrack(tracks []captionTrack, code string) (captionTrack, bool) {
	var best captionTrack
	bestScore := -1
	for _, t := range tracks {
		if t.LanguageCode != code {
			continue
		}
		score := 0
		if t.Kind != "asr" {
			score += 2
		}
		if !needsPoToken(t.BaseURL) {
			score++
		}
		if score > bestScore {
			best, bestScore = t, score
		}
	}
	return best, bestScore >= 0
}
