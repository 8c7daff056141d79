package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// slowOperation is the threshold above which TrackOperation logs a warning.
var slowOperation = 60 * time.Second

// Metrics tracks operational counters across the engine.
var metrics struct {
	SummaryRequests      atomic.Int64
	TranscriptRequests   atomic.Int64
	MetadataRequests     atomic.Int64
	Failures             atomic.Int64
	CaptionListRequests  atomic.Int64
	CaptionFetchRequests atomic.Int64
	ModelListRequests    atomic.Int64
	GenerationCalls      atomic.Int64
	GenerationErrors     atomic.Int64
	GenerationTimeouts   atomic.Int64
	YouTubeRequests      atomic.Int64
	OEmbedRequests       atomic.Int64
}

var metricKeys = []string{
	"summary_requests", "transcript_requests", "metadata_requests", "failures",
	"caption_list_requests", "caption_fetch_requests",
	"model_list_requests",
	"generation_calls", "generation_errors", "generation_timeouts",
	"youtube_requests", "oembed_requests",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"summary_requests":       metrics.SummaryRequests.Load(),
		"transcript_requests":    metrics.TranscriptRequests.Load(),
		"metadata_requests":      metrics.MetadataRequests.Load(),
		"failures":               metrics.Failures.Load(),
		"caption_list_requests":  metrics.CaptionListRequests.Load(),
		"caption_fetch_requests": metrics.CaptionFetchRequests.Load(),
		"model_list_requests":    metrics.ModelListRequests.Load(),
		"generation_calls":       metrics.GenerationCalls.Load(),
		"generation_errors":      metrics.GenerationErrors.Load(),
		"generation_timeouts":    metrics.GenerationTimeouts.Load(),
		"youtube_requests":       metrics.YouTubeRequests.Load(),
		"oembed_requests":        metrics.OEmbedRequests.Load(),
		"cache_hits":             hits,
		"cache_misses":           misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrYouTubeRequests() { metrics.YouTubeRequests.Add(1) }
func IncrOEmbedRequests()  { metrics.OEmbedRequests.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > slowOperation {
		LoggerFrom(ctx).Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
