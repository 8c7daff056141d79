package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptDefault(t *testing.T) {
	got := BuildPrompt("Never gonna give you up", "de", "")

	for _, want := range []string{"Never gonna give you up", "short-code: de", "Positive, Neutral, or Negative", "Markdown", "2-sentence"} {
		if !strings.Contains(got, want) {
			t.Errorf("default prompt missing %q", want)
		}
	}
	if strings.Contains(got, TranscriptMarker) || strings.Contains(got, LanguageMarker) {
		t.Error("default prompt still contains a marker")
	}
}

func TestBuildPromptTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"both markers", "Summarize in [language]: [[concatenated_transcript]]", "Summarize in fr: hello world"},
		{"no markers", "Just say hi", "Just say hi"},
		{"only language", "[language]!", "fr!"},
		{"repeated marker", "[language]/[language]", "fr/fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPrompt("hello world", "fr", tt.template); got != tt.want {
				t.Errorf("BuildPrompt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildPromptMarkerInTranscript(t *testing.T) {
	got := BuildPrompt("he said [language] twice", "en", "[[concatenated_transcript]] ([language])")
	want := "he said [language] twice (en)"
	if got != want {
		t.Errorf("BuildPrompt = %q, want %q", got, want)
	}
}

func TestPromptSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	data := `default: |
  File default [[concatenated_transcript]]
templates:
  bullets: "Bullets in [language]: [[concatenated_transcript]]"
  tweet: "Tweet: [[concatenated_transcript]]"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	ps, err := LoadPromptSet(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"bullets", "tweet"}, ps.Names())
	assert.Equal(t, "explicit", ps.Resolve("explicit", "bullets"), "explicit template wins")
	assert.Equal(t, "Bullets in [language]: [[concatenated_transcript]]", ps.Resolve("", "bullets"))
	assert.Equal(t, "File default [[concatenated_transcript]]\n", ps.Resolve("", "unknown"))
	assert.Equal(t, "File default [[concatenated_transcript]]\n", ps.Resolve("", ""))

	var none *PromptSet
	assert.Equal(t, "", none.Resolve("", "bullets"))
	assert.Equal(t, "x", none.Resolve("x", ""))
	assert.Nil(t, none.Names())
}

func TestLoadPromptSetErrors(t *testing.T) {
	_, err := LoadPromptSet(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates: [unclosed"), 0o600))
	_, err = LoadPromptSet(path)
	assert.Error(t, err)
}

func TestSetPrompts(t *testing.T) {
	t.Cleanup(func() { SetPrompts(nil) })
	ps := &PromptSet{Default: "d"}
	SetPrompts(ps)
	assert.Same(t, ps, Prompts())
}
