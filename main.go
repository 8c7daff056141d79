// go_tldr: YouTube video summarization MCP server.
//
// Exposes five MCP tools: video_summary, video_transcript, video_metadata,
// generation_models, generation_health.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/engine/sources"
	"github.com/anatolykoptev/go_tldr/internal/tldrserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	deps, err := buildDeps()
	if err != nil {
		slog.Error("engine wiring failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting go_tldr",
		slog.String("port", mcpPort),
		slog.String("backend", deps.Backend),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tldr",
		Version: version,
	}, nil)

	tldrserver.RegisterTools(server, deps)
	slog.Info("tools registered", slog.Int("count", len(tldrserver.ToolNames)))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tldr",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: engine.Cfg.GenerationTimeout + 60*time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		OllamaURL:              env.Str("OLLAMA_URL", "http://localhost:11434"),
		GenerationBackend:      env.Str("GENERATION_BACKEND", engine.BackendOllama),
		LLMAPIBase:             env.Str("LLM_API_BASE", ""),
		LLMAPIKey:              env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:     env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMTemperature:         env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:           env.Int("LLM_MAX_TOKENS", 4096),
		DefaultModelPreference: env.Str("DEFAULT_MODEL_PREFERENCE", "llama"),
		GenerationTimeout:      env.Duration("GENERATION_TIMEOUT", 5*time.Minute),
		FetchTimeout:           env.Duration("FETCH_TIMEOUT", 15*time.Second),
		PromptsFile:            env.Str("PROMPTS_FILE", ""),
		YouTubeHL:              env.Str("YOUTUBE_LANG_HL", "en"),
		CacheTTL:               env.Duration("CACHE_TTL", 6*time.Hour),
		CacheMaxEntries:        env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval:   env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
	// Generation waits are bounded by GenerationClient, not the transport.
	c.GenerationHTTPClient = &http.Client{}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, watch pages use plain HTTP", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)

	if c.PromptsFile != "" {
		ps, err := engine.LoadPromptSet(c.PromptsFile)
		if err != nil {
			slog.Warn("prompt file ignored, using built-in prompt", slog.Any("error", err))
		} else {
			engine.SetPrompts(ps)
			slog.Info("prompt file loaded", slog.String("path", c.PromptsFile), slog.Any("templates", ps.Names()))
		}
	}

	engine.InitCache(env.Str("REDIS_URL", ""), engine.Cfg.CacheTTL, engine.Cfg.CacheMaxEntries, engine.Cfg.CacheCleanupInterval)
}

func buildDeps() (tldrserver.Deps, error) {
	backend := engine.Cfg.GenerationBackend
	factory, err := sources.NewGeneratorFactory(backend)
	if err != nil {
		return tldrserver.Deps{}, err
	}

	orch := engine.NewOrchestrator(engine.OrchestratorConfig{
		Captions:          sources.NewYouTube(),
		Backend:           factory,
		ModelPreference:   engine.Cfg.DefaultModelPreference,
		GenerationTimeout: engine.Cfg.GenerationTimeout,
	})
	return tldrserver.Deps{
		Orchestrator: orch,
		Metadata:     engine.NewMetadataService(sources.NewOEmbed(""), orch.Captions()),
		Backend:      backend,
	}, nil
}
