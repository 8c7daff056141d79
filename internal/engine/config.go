package engine

import (
	"net/http"
	"strings"
	"time"
)

// Backend names accepted by GENERATION_BACKEND.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	OllamaURL              string // default Text Generation Service location
	GenerationBackend      string // "ollama" (default) or "openai"
	LLMAPIBase             string // default location for the openai backend
	LLMAPIKey              string
	LLMAPIKeyFallbacks     []string
	LLMTemperature         float64
	LLMMaxTokens           int
	DefaultModelPreference string // substring preferred by default model selection
	GenerationTimeout      time.Duration
	FetchTimeout           time.Duration
	PromptsFile            string // optional YAML file with prompt templates
	YouTubeHL              string // interface language sent to Innertube
	CacheTTL               time.Duration
	CacheMaxEntries        int
	CacheCleanupInterval   time.Duration
	HTTPClient             *http.Client   // captions, metadata, model listing
	GenerationHTTPClient   *http.Client   // long-running generation calls
	BrowserClient          *BrowserClient // nil = plain HTTP for watch pages
}

var cfg = Config{
	OllamaURL:              "http://localhost:11434",
	GenerationBackend:      BackendOllama,
	DefaultModelPreference: "llama",
	GenerationTimeout:      5 * time.Minute,
	FetchTimeout:           15 * time.Second,
	YouTubeHL:              "en",
	HTTPClient:             http.DefaultClient,
	GenerationHTTPClient:   http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero-valued fields keep their defaults.
func Init(c Config) {
	if c.OllamaURL == "" {
		c.OllamaURL = "http://localhost:11434"
	}
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = strings.TrimRight(c.OllamaURL, "/") + "/v1"
	}
	if c.GenerationBackend == "" {
		c.GenerationBackend = BackendOllama
	}
	if c.DefaultModelPreference == "" {
		c.DefaultModelPreference = "llama"
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = 5 * time.Minute
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 6 * time.Hour
	}
	if c.YouTubeHL == "" {
		c.YouTubeHL = "en"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	if c.GenerationHTTPClient == nil {
		c.GenerationHTTPClient = &http.Client{}
	}
	cfg = c
	Cfg = &cfg
}
