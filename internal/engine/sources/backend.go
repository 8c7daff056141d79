package sources

import (
	"fmt"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// NewGeneratorFactory returns the factory for backend. Each call binds a
// generator to the request's location, or to the configured default when the
// location is empty. Nothing about the location is retained.
func NewGeneratorFactory(backend string) (engine.GeneratorFactory, error) {
	switch backend {
	case "", engine.BackendOllama:
		return func(location string) engine.TextGenerator {
			if location == "" {
				location = engine.Cfg.OllamaURL
			}
			return NewOllama(location)
		}, nil
	case engine.BackendOpenAI:
		return func(location string) engine.TextGenerator {
			if location == "" {
				location = engine.Cfg.LLMAPIBase
			}
			return NewOpenAI(location)
		}, nil
	default:
		return nil, fmt.Errorf("unknown generation backend %q", backend)
	}
}
