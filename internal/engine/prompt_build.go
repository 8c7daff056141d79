package engine

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BuildPrompt renders template with the transcript and language code.
// An empty template means DefaultPromptTemplate. Replacement is a single pass,
// so marker-like text inside the transcript is left alone.
func BuildPrompt(transcript, languageCode, template string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}
	r := strings.NewReplacer(
		TranscriptMarker, transcript,
		LanguageMarker, languageCode,
	)
	return r.Replace(template)
}

// PromptSet is the optional YAML prompt file:
//
//	default: |
//	  Summarize [[concatenated_transcript]] in [language].
//	templates:
//	  bullets: |
//	    ...
type PromptSet struct {
	Default   string            `yaml:"default"`
	Templates map[string]string `yaml:"templates"`
}

// LoadPromptSet reads and parses a YAML prompt file.
func LoadPromptSet(path string) (*PromptSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	var ps PromptSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}
	return &ps, nil
}

// Resolve picks the template for a request: an explicit template wins, then a
// known named template, then the file default. "" means the built-in default.
func (ps *PromptSet) Resolve(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	if ps == nil {
		return ""
	}
	if name != "" {
		if t, ok := ps.Templates[name]; ok {
			return t
		}
	}
	return ps.Default
}

// Names lists the named templates.
func (ps *PromptSet) Names() []string {
	if ps == nil {
		return nil
	}
	names := make([]string, 0, len(ps.Templates))
	for n := range ps.Templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	promptsMu sync.RWMutex
	prompts   *PromptSet
)

// SetPrompts installs the process-wide prompt set loaded at startup.
func SetPrompts(ps *PromptSet) {
	promptsMu.Lock()
	prompts = ps
	promptsMu.Unlock()
}

// Prompts returns the prompt set installed by SetPrompts, or nil.
func Prompts() *PromptSet {
	promptsMu.RLock()
	defer promptsMu.RUnlock()
	return prompts
}
