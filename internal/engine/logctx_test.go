package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromDefault(t *testing.T) {
	assert.Same(t, slog.Default(), LoggerFrom(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, l, LoggerFrom(ContextWithLogger(context.Background(), l)))
}

func TestSummarizeFailureLoggedOnceWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil)).With(slog.String("request_id", "req-1"))
	ctx := ContextWithLogger(context.Background(), l)

	o := newTestOrchestrator(rickDirectory(), &fakeGenerator{models: []string{"llama3"}}, nil)
	out := o.Summarize(ctx, SummaryRequest{Video: "dQw4w9WgXcQ", Language: "fr"})
	require.NotNil(t, out.Failure)

	var failures []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "stage failed") {
			failures = append(failures, line)
		}
	}
	require.Len(t, failures, 1, buf.String())
	assert.Contains(t, failures[0], "request_id=req-1")
	assert.Contains(t, failures[0], "kind="+string(KindLanguageNotFound))
}
