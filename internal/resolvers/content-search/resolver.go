package contentsearch

import (
	"context"
	"errors"
	"fmt"

	commonerrors "craft-assistant/internal/common/errors"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/metrics"
	"craft-assistant/internal/models"
	relevancefilter "craft-assistant/internal/resolvers/relevance-filter"
)

const Name = "content_search"

// Resolver answers from the brand page that best matches the query.
type Resolver struct {
	config *Config
	store  ContentStore
	logger logger.Logger
}

func NewResolver(config *Config, store ContentStore, log logger.Logger) *Resolver {
	return &Resolver{
		config: config,
		store:  store,
		logger: log.With(map[string]interface{}{
			"resolver": Name,
			"backend":  config.Backend,
		}),
	}
}

func (r *Resolver) Name() string {
	return Name
}

// Resolve never returns an error: a failing store is logged and treated as
// no match so the chain can continue.
func (r *Resolver) Resolve(ctx context.Context, q *models.Query) (*models.ResolutionResult, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	record, err := r.store.FindShortestMatch(ctx, q.Text)
	if err != nil {
		code := errorCode(err)
		metrics.ResolverErrors.WithLabelValues(Name, string(code)).Inc()
		r.logger.Warn("content store lookup failed, skipping", map[string]interface{}{
			"queryId":   q.ID,
			"errorCode": string(code),
			"error":     err.Error(),
		})
		return nil, nil
	}
	if record == nil {
		return nil, nil
	}

	answer := relevancefilter.Filter(record.Content, q.Text, r.config.MaxSentences)
	if answer == "" {
		return nil, nil
	}

	result := &models.ResolutionResult{
		Answer:   answer,
		Resolver: Name,
		Status:   models.StatusOK,
		QueryID:  q.ID,
	}
	if record.URL != "" {
		result.Answer += fmt.Sprintf("\n\n🔗 [More Info](%s)", record.URL)
		result.SourceURL = record.URL
	}

	r.logger.Debug("content matched", map[string]interface{}{
		"queryId": q.ID,
		"title":   record.Title,
	})

	return result, nil
}

func errorCode(err error) commonerrors.ErrorCode {
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return commonerrors.ErrCodeContentStoreUnavailable
	}
	return commonerrors.ErrCodeContentQueryFailed
}
