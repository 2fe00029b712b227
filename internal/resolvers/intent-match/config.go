package intentmatch

import "craft-assistant/internal/common/config"

type Config struct {
	Rules     []Rule
	Responses map[string]string
}

// LoadConfig builds the matcher catalog from the assistant section.
func LoadConfig(cfg config.AssistantConfig) *Config {
	responses := make(map[string]string, len(cfg.IntentResponses))
	for k, v := range cfg.IntentResponses {
		responses[k] = v
	}
	return &Config{
		Rules:     DefaultRules(),
		Responses: responses,
	}
}
