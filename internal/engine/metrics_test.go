package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics()
	for _, key := range metricKeys {
		if !strings.Contains(out, key+" ") {
			t.Errorf("FormatMetrics missing %q", key)
		}
	}
	if lines := strings.Count(out, "\n"); lines != len(metricKeys) {
		t.Errorf("got %d lines, want %d", lines, len(metricKeys))
	}
}

func TestGetMetricsCounts(t *testing.T) {
	before := GetMetrics()
	IncrYouTubeRequests()
	IncrOEmbedRequests()
	after := GetMetrics()

	if d := after["youtube_requests"] - before["youtube_requests"]; d != 1 {
		t.Errorf("youtube_requests delta = %d", d)
	}
	if d := after["oembed_requests"] - before["oembed_requests"]; d != 1 {
		t.Errorf("oembed_requests delta = %d", d)
	}
	if len(after) != len(metricKeys) {
		t.Errorf("GetMetrics has %d keys, metricKeys has %d", len(after), len(metricKeys))
	}
}

func TestTrackOperation(t *testing.T) {
	want := errors.New("boom")
	called := false
	err := TrackOperation(context.Background(), "op", func(context.Context) error {
		called = true
		return want
	})
	if !called || !errors.Is(err, want) {
		t.Errorf("TrackOperation = %v, called=%v", err, called)
	}
}
