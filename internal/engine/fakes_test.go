package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// fakeDirectory is an in-memory CaptionDirectory.
type fakeDirectory struct {
	tracks   []CaptionTrack
	segments map[string][]Segment
	listErr  error
	fetchErr error

	listCalls  atomic.Int32
	fetchCalls atomic.Int32
}

func (d *fakeDirectory) ListTracks(_ context.Context, _ string) ([]CaptionTrack, error) {
	d.listCalls.Add(1)
	if d.listErr != nil {
		return nil, d.listErr
	}
	return d.tracks, nil
}

func (d *fakeDirectory) FetchSegments(_ context.Context, _ string, lang string) ([]Segment, error) {
	d.fetchCalls.Add(1)
	if d.fetchErr != nil {
		return nil, d.fetchErr
	}
	segs, ok := d.segments[lang]
	if !ok {
		return nil, ErrTrackNotFound
	}
	return segs, nil
}

// fakeGenerator is an in-memory TextGenerator.
type fakeGenerator struct {
	models  []string
	listErr error
	reply   *string
	genErr  error
	delay   time.Duration

	listCalls  atomic.Int32
	lastModel  atomic.Value // string
	lastPrompt atomic.Value // string
}

func (g *fakeGenerator) ListModels(_ context.Context) ([]string, error) {
	g.listCalls.Add(1)
	return g.models, g.listErr
}

func (g *fakeGenerator) Generate(ctx context.Context, model, prompt string) (Completion, error) {
	g.lastModel.Store(model)
	g.lastPrompt.Store(prompt)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return Completion{}, ctx.Err()
		}
	}
	if g.genErr != nil {
		return Completion{}, g.genErr
	}
	return Completion{Text: g.reply}, nil
}

func strPtr(s string) *string { return &s }

func segs(texts ...string) []Segment {
	out := make([]Segment, len(texts))
	for i, t := range texts {
		out[i] = Segment{Text: t, Start: float64(i), Duration: 1}
	}
	return out
}
