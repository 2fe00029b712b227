package pipeline

import (
	"fmt"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/logger"
	contactlookup "craft-assistant/internal/resolvers/contact-lookup"
	contentsearch "craft-assistant/internal/resolvers/content-search"
	fallbackgenerator "craft-assistant/internal/resolvers/fallback-generator"
	intentmatch "craft-assistant/internal/resolvers/intent-match"
)

// NewChain builds the standard resolver order:
// intent, contact, content search, generative fallback.
func NewChain(cfg *config.Config, store contentsearch.ContentStore, generator fallbackgenerator.Generator, log logger.Logger) ([]Resolver, error) {
	directory, err := contactlookup.LoadDirectory(cfg.Assistant.Contacts)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	return []Resolver{
		intentmatch.NewResolver(intentmatch.LoadConfig(cfg.Assistant), log),
		contactlookup.NewResolver(directory, log),
		contentsearch.NewResolver(contentsearch.LoadConfig(cfg), store, log),
		fallbackgenerator.NewResolver(fallbackgenerator.LoadConfig(cfg), generator, log),
	}, nil
}
