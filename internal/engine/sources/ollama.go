package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// Ollama talks to the native Ollama HTTP API at one base URL.
type Ollama struct {
	baseURL string
}

// NewOllama returns a generator for the Ollama server at baseURL.
func NewOllama(baseURL string) *Ollama {
	return &Ollama{baseURL: strings.TrimRight(baseURL, "/")}
}

var _ engine.TextGenerator = (*Ollama)(nil)

type ollamaTags struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

type ollamaGenerateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResp struct {
	Response *string `json:"response"`
	Error    string  `json:"error"`
}

// ListModels returns the locally installed model names from /api/tags.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("ollama tags: HTTP %d: %s", resp.StatusCode, snippet)
	}

	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("ollama tags decode: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Generate runs a single non-streaming /api/generate call. Generation is not
// retried; a missing "response" field yields a Completion with nil Text.
func (o *Ollama) Generate(ctx context.Context, model, prompt string) (engine.Completion, error) {
	body, err := json.Marshal(ollamaGenerateReq{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return engine.Completion{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return engine.Completion{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := engine.Cfg.GenerationHTTPClient.Do(req)
	if err != nil {
		return engine.Completion{}, fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	var out ollamaGenerateResp
	decErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return engine.Completion{}, fmt.Errorf("ollama generate: HTTP %d: %s", resp.StatusCode, out.Error)
		}
		return engine.Completion{}, fmt.Errorf("ollama generate: HTTP %d", resp.StatusCode)
	}
	if decErr != nil {
		return engine.Completion{}, fmt.Errorf("ollama generate decode: %w", decErr)
	}
	return engine.Completion{Text: out.Response}, nil
}
