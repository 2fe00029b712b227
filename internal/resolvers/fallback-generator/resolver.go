package fallbackgenerator

import (
	"context"
	"errors"

	commonerrors "craft-assistant/internal/common/errors"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/metrics"
	"craft-assistant/internal/models"
	"craft-assistant/internal/resolvers/locale"
)

const Name = "fallback"

const errorAnswerPrefix = "❌ AI service error: "

// Resolver is the last link of the chain. It always produces a result.
type Resolver struct {
	config    *Config
	generator Generator
	logger    logger.Logger
}

func NewResolver(config *Config, generator Generator, log logger.Logger) *Resolver {
	return &Resolver{
		config:    config,
		generator: generator,
		logger:    log.With(map[string]interface{}{"resolver": Name}),
	}
}

func (r *Resolver) Name() string {
	return Name
}

// Directive returns the system directive for the given locale.
func (r *Resolver) Directive(l locale.Locale) string {
	if l.IsSecondary() {
		return r.config.SecondaryDirective
	}
	return r.config.DefaultDirective
}

func (r *Resolver) Resolve(ctx context.Context, q *models.Query) (*models.ResolutionResult, error) {
	loc := q.Locale()

	reply, err := r.generator.Complete(ctx, CompletionRequest{
		Directive:   r.Directive(loc),
		Query:       q.Text,
		Model:       r.config.Model,
		Temperature: r.config.Temperature,
	})
	if err != nil {
		code := commonerrors.ErrCodeGenerativeServiceFailed
		if errors.Is(err, ErrCompletionTimeout) {
			code = commonerrors.ErrCodeGenerativeTimeout
		}
		metrics.ResolverErrors.WithLabelValues(Name, string(code)).Inc()
		r.logger.Error("generative service failed", map[string]interface{}{
			"queryId":   q.ID,
			"locale":    string(loc),
			"errorCode": string(code),
			"error":     err.Error(),
		})

		return &models.ResolutionResult{
			Answer:   errorAnswerPrefix + err.Error(),
			Resolver: Name,
			Status:   models.StatusServiceFailed,
			QueryID:  q.ID,
		}, nil
	}

	r.logger.Debug("generative reply received", map[string]interface{}{
		"queryId": q.ID,
		"locale":  string(loc),
	})

	return &models.ResolutionResult{
		Answer:   reply,
		Resolver: Name,
		Status:   models.StatusOK,
		QueryID:  q.ID,
	}, nil
}
