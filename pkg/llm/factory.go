package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/config"
)

// NewGenerator creates the Generator selected by configuration.
func NewGenerator(cfg *config.AIConfig, logger *zap.Logger) (Generator, error) {
	switch cfg.Provider {
	case "openai":
		return NewClient(&Config{
			Endpoint: cfg.BaseURL,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
		}, logger)
	case "anthropic":
		return NewAnthropicClient(&Config{
			Model:  cfg.Model,
			APIKey: cfg.APIKey,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}
