package contentsearch

import (
	"context"
	"errors"
	"fmt"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/database"
	"craft-assistant/internal/models"
)

var (
	ErrStoreUnavailable = errors.New("CONTENT_STORE_UNAVAILABLE")
	ErrQueryFailed      = errors.New("CONTENT_QUERY_FAILED")
)

// ContentStore finds the shortest record whose content contains keyword,
// ignoring case. It returns nil, nil when nothing matches.
type ContentStore interface {
	FindShortestMatch(ctx context.Context, keyword string) (*models.ContentRecord, error)
}

// NewStore builds the store for the configured backend.
func NewStore(cfg *Config, pg *database.PostgresClient, es *database.ElasticsearchClient) (ContentStore, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		if pg == nil {
			return nil, fmt.Errorf("postgres backend selected without a postgres client")
		}
		return NewPostgresStore(pg, cfg.Table)
	case config.BackendElasticsearch:
		if es == nil {
			return nil, fmt.Errorf("elasticsearch backend selected without an elasticsearch client")
		}
		return NewElasticsearchStore(es, cfg.Index), nil
	default:
		return nil, fmt.Errorf("unknown content store backend %q", cfg.Backend)
	}
}
