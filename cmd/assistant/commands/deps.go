package commands

import (
	"context"
	"fmt"
	"time"

	"craft-assistant/internal/common/config"
	"craft-assistant/internal/common/database"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/pipeline"
	contentsearch "craft-assistant/internal/resolvers/content-search"
	fallbackgenerator "craft-assistant/internal/resolvers/fallback-generator"
	"craft-assistant/internal/stats"
	"craft-assistant/internal/transport/chat"
)

// dependencies owns every client the resolution pipeline needs.
type dependencies struct {
	postgres      *database.PostgresClient
	elasticsearch *database.ElasticsearchClient
	redis         *database.RedisClient
	stats         *stats.RedisRecorder
	chain         []pipeline.Resolver
	checks        []chat.ReadinessCheck
}

// retryWithBackoff attempts operation up to maxRetries times, doubling the delay.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// buildDependencies connects the content store and the stats store. Neither
// is fatal when unreachable: lookups degrade to the fallback and stats are
// skipped.
func buildDependencies(ctx context.Context, cfg *config.Config, log logger.Logger, attempts int) (*dependencies, error) {
	deps := &dependencies{}

	switch cfg.ContentStore.Backend {
	case config.BackendElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		deps.elasticsearch = es
		deps.checks = append(deps.checks, chat.ReadinessCheck{Name: "elasticsearch", Check: es.Ping})
		if err := retryWithBackoff(func() error { return es.Ping(ctx) }, attempts, 2*time.Second, log, "Elasticsearch connection"); err != nil {
			log.Warn("content store unreachable, lookups will fall through", map[string]interface{}{"error": err.Error()})
		}
	default:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		deps.postgres = pg
		deps.checks = append(deps.checks, chat.ReadinessCheck{Name: "postgres", Check: pg.Ping})
		if err := retryWithBackoff(func() error { return pg.Ping(ctx) }, attempts, 2*time.Second, log, "PostgreSQL connection"); err != nil {
			log.Warn("content store unreachable, lookups will fall through", map[string]interface{}{"error": err.Error()})
		}
	}

	store, err := contentsearch.NewStore(contentsearch.LoadConfig(cfg), deps.postgres, deps.elasticsearch)
	if err != nil {
		deps.Close()
		return nil, err
	}

	genCfg := fallbackgenerator.LoadConfig(cfg)
	generator := fallbackgenerator.NewOpenAIGenerator(genCfg.BaseURL, genCfg.APIKey, genCfg.Timeout)

	deps.chain, err = pipeline.NewChain(cfg, store, generator, log)
	if err != nil {
		deps.Close()
		return nil, err
	}

	if cfg.Stats.Enabled {
		rc := database.NewRedis(cfg.Database.Redis)
		if err := retryWithBackoff(func() error { return rc.Ping(ctx) }, attempts, time.Second, log, "Redis connection"); err != nil {
			log.Warn("stats store unreachable, stats disabled", map[string]interface{}{"error": err.Error()})
			rc.Close()
		} else {
			deps.redis = rc
			deps.stats = stats.NewRedisRecorder(rc.Client, cfg.Stats.KeyPrefix)
			deps.checks = append(deps.checks, chat.ReadinessCheck{Name: "redis", Check: rc.Ping})
		}
	}

	return deps, nil
}

// pipelineOptions skips the stats option when Redis is not wired; a typed nil
// would otherwise be called.
func (d *dependencies) pipelineOptions() []pipeline.Option {
	if d.stats == nil {
		return nil
	}
	return []pipeline.Option{pipeline.WithStats(d.stats)}
}

func (d *dependencies) statsReader() chat.StatsReader {
	if d.stats == nil {
		return nil
	}
	return d.stats
}

func (d *dependencies) Close() {
	if d.postgres != nil {
		_ = d.postgres.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}
