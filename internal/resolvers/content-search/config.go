package contentsearch

import (
	"time"

	"craft-assistant/internal/common/config"
)

type Config struct {
	Backend      string
	Table        string
	Index        string
	Timeout      time.Duration
	MaxSentences int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Backend:      cfg.ContentStore.Backend,
		Table:        cfg.ContentStore.Table,
		Index:        cfg.ContentStore.Index,
		Timeout:      config.GetDuration(cfg.ContentStore.Timeout),
		MaxSentences: cfg.Assistant.MaxSentences,
	}
}
