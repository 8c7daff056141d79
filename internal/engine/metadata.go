package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// VideoInfo is the display data returned by the metadata lookup.
type VideoInfo struct {
	VideoID      string         `json:"video_id"`
	Title        string         `json:"title,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Languages    []CaptionTrack `json:"languages"`
}

// MetadataService combines oEmbed-style display data with the caption
// languages of a video. Complete results are cached.
type MetadataService struct {
	src      MetadataSource
	captions *CaptionClient
}

// NewMetadataService returns a service reading display data from src and
// languages through captions. src may be nil.
func NewMetadataService(src MetadataSource, captions *CaptionClient) *MetadataService {
	return &MetadataService{src: src, captions: captions}
}

// Lookup resolves raw and returns its metadata. A video without captions has
// an empty language list; a failing display lookup leaves Title empty.
func (s *MetadataService) Lookup(ctx context.Context, raw string) (*VideoInfo, *Failure) {
	metrics.MetadataRequests.Add(1)

	videoID, ok := ResolveVideoID(raw)
	if !ok {
		out := fail(StageResolution, KindInvalidVideoID, fmt.Errorf("cannot resolve %q", TruncateRunes(raw, 64, "…")))
		return nil, out.Failure
	}

	key := CacheKey("meta", videoID)
	if info, ok := CacheLoadJSON[VideoInfo](ctx, key); ok {
		return &info, nil
	}

	tracks, err := s.captions.ListTracks(ctx, videoID)
	if err != nil {
		kind := KindOf(err)
		if kind != KindNoCaptionsAvailable {
			out := fail(StageDirectoryListing, kind, err)
			metrics.Failures.Add(1)
			LoggerFrom(ctx).Warn("metadata: listing failed",
				slog.String("video", videoID),
				slog.String("kind", string(kind)),
				slog.Any("error", err),
			)
			return nil, out.Failure
		}
		tracks = nil
	}
	if tracks == nil {
		tracks = []CaptionTrack{}
	}
	info := VideoInfo{VideoID: videoID, Languages: tracks}

	complete := true
	if s.src != nil {
		meta, err := s.src.Metadata(ctx, videoID)
		if err != nil {
			complete = false
			LoggerFrom(ctx).Warn("metadata: display lookup failed", slog.String("video", videoID), slog.Any("error", err))
		} else {
			info.Title = meta.Title
			info.ThumbnailURL = meta.ThumbnailURL
		}
	}

	if complete {
		CacheStoreJSON(ctx, key, info)
	}
	return &info, nil
}
