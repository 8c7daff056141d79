package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// OpenAI talks to an OpenAI-compatible API. Generation goes through
// go-kit/llm; the model list comes from GET {base}/models.
type OpenAI struct {
	baseURL string
}

// NewOpenAI returns a generator for the OpenAI-compatible API at baseURL
// (e.g. https://api.openai.com/v1).
func NewOpenAI(baseURL string) *OpenAI {
	return &OpenAI{baseURL: strings.TrimRight(baseURL, "/")}
}

var _ engine.TextGenerator = (*OpenAI)(nil)

type openAIModels struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels returns model IDs in the order the API lists them.
func (o *OpenAI) ListModels(ctx context.Context) ([]string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if key := engine.Cfg.LLMAPIKey; key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("openai models: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("openai models: HTTP %d: %s", resp.StatusCode, snippet)
	}

	var list openAIModels
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("openai models decode: %w", err)
	}
	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

// Generate sends prompt as a single user message.
func (o *OpenAI) Generate(ctx context.Context, model, prompt string) (engine.Completion, error) {
	c := engine.Cfg
	client := llm.NewClient(o.baseURL, c.LLMAPIKey, model,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(c.GenerationHTTPClient),
	)
	text, err := client.Complete(ctx, "", prompt)
	if err != nil {
		return engine.Completion{}, fmt.Errorf("openai generate: %w", err)
	}
	return completionFromText(text), nil
}

// completionFromText maps a chat completion to the engine's shape. The client
// reports a reply without content as "", which is treated as a missing text
// field; any other text, whitespace included, is passed on for trimming.
func completionFromText(text string) engine.Completion {
	if text == "" {
		return engine.Completion{}
	}
	return engine.Completion{Text: &text}
}
