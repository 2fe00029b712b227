package fallbackgenerator

import (
	"time"

	"craft-assistant/internal/common/config"
)

type Config struct {
	BaseURL            string
	APIKey             string
	Model              string
	Temperature        float64
	Timeout            time.Duration
	DefaultDirective   string
	SecondaryDirective string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		BaseURL:            cfg.APIs.GenAI.BaseURL,
		APIKey:             cfg.APIs.GenAI.APIKey,
		Model:              cfg.APIs.GenAI.Model,
		Temperature:        cfg.APIs.GenAI.Temperature,
		Timeout:            config.GetDuration(cfg.APIs.GenAI.Timeout),
		DefaultDirective:   cfg.Assistant.Directives.Default,
		SecondaryDirective: cfg.Assistant.Directives.Secondary,
	}
}
