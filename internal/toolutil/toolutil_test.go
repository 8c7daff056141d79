package toolutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

type sampleInput struct {
	Video         string `json:"video" validate:"required,max=20"`
	Language      string `json:"language,omitempty" validate:"omitempty,max=16"`
	GenerationURL string `json:"generation_url,omitempty" validate:"omitempty,url"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      sampleInput
		wantErr string
	}{
		{"ok", sampleInput{Video: "dQw4w9WgXcQ"}, ""},
		{"ok with url", sampleInput{Video: "dQw4w9WgXcQ", GenerationURL: "http://localhost:11434"}, ""},
		{"missing video", sampleInput{}, "'Video' failed on the 'required' tag"},
		{"bad url", sampleInput{Video: "x", GenerationURL: "not a url"}, "'GenerationURL' failed on the 'url' tag"},
		{"long language", sampleInput{Video: "x", Language: strings.Repeat("e", 17)}, "(param: 16)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID on bare ctx = %q", got)
	}
	ctx, log := WithRequestID(context.Background(), "video_summary")
	id := RequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("request id %q is not a UUID: %v", id, err)
	}
	if log == nil {
		t.Error("nil logger")
	}
	ctx2, _ := WithRequestID(context.Background(), "video_summary")
	if RequestID(ctx2) == id {
		t.Error("request ids must differ per call")
	}
}

func TestWithRequestIDAttachesEngineLogger(t *testing.T) {
	ctx, log := WithRequestID(context.Background(), "video_metadata")
	if got := engine.LoggerFrom(ctx); got != log {
		t.Errorf("engine.LoggerFrom = %p, want the request logger %p", got, log)
	}
}
