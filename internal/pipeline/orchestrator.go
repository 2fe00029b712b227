package pipeline

import (
	"context"
	"strings"
	"time"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/metrics"
	"craft-assistant/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ResolverNone marks results produced by the orchestrator itself.
	ResolverNone = "pipeline"

	ValidationMessage = "❌ Please type something."
	NoAnswerMessage   = "❌ Sorry, I could not find an answer right now. Please try again later."
)

// Resolver is one link of the chain. A nil result means the resolver
// declines and the next one is tried.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, q *models.Query) (*models.ResolutionResult, error)
}

// StatsRecorder stores which resolver won. Failures never reach the caller.
type StatsRecorder interface {
	Record(ctx context.Context, resolver, status string) error
}

// ResolutionRecorder receives the outcome of every resolution.
type ResolutionRecorder interface {
	RecordResolution(ctx context.Context, resolver, status string, elapsed time.Duration)
}

type Option func(*Orchestrator)

func WithTracer(tracer trace.Tracer) Option {
	return func(o *Orchestrator) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

func WithStats(stats StatsRecorder) Option {
	return func(o *Orchestrator) {
		o.stats = stats
	}
}

func WithResolutionRecorder(recorder ResolutionRecorder) Option {
	return func(o *Orchestrator) {
		o.recorder = recorder
	}
}

// Orchestrator runs the resolvers in order and returns the first answer.
type Orchestrator struct {
	resolvers []Resolver
	logger    logger.Logger
	tracer    trace.Tracer
	stats     StatsRecorder
	recorder  ResolutionRecorder
}

func New(resolvers []Resolver, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolvers: resolvers,
		logger:    log.With(map[string]interface{}{"component": "pipeline"}),
		tracer:    noop.NewTracerProvider().Tracer("pipeline"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Resolvers returns the chain names in order.
func (o *Orchestrator) Resolvers() []string {
	names := make([]string, len(o.resolvers))
	for i, r := range o.resolvers {
		names[i] = r.Name()
	}
	return names
}

// Resolve answers text. The result is never nil and its Answer never empty.
func (o *Orchestrator) Resolve(ctx context.Context, text string) *models.ResolutionResult {
	return o.ResolveQuery(ctx, models.NewQuery(text))
}

func (o *Orchestrator) ResolveQuery(ctx context.Context, q *models.Query) *models.ResolutionResult {
	start := time.Now()

	ctx, span := o.tracer.Start(ctx, "pipeline.resolve", trace.WithAttributes(
		attribute.String("query.id", q.ID),
	))
	defer span.End()

	result := o.run(ctx, q)

	span.SetAttributes(
		attribute.String("resolver", result.Resolver),
		attribute.String("status", string(result.Status)),
	)
	if !result.OK() {
		span.SetStatus(codes.Error, string(result.Status))
	}

	o.finish(ctx, q, result, time.Since(start))
	return result
}

func (o *Orchestrator) run(ctx context.Context, q *models.Query) *models.ResolutionResult {
	if q.IsEmpty() {
		return &models.ResolutionResult{
			Answer:   ValidationMessage,
			Resolver: ResolverNone,
			Status:   models.StatusValidationFailed,
			QueryID:  q.ID,
		}
	}

	for _, r := range o.resolvers {
		result := o.step(ctx, r, q)
		if result != nil {
			return result
		}
	}

	o.logger.Error("every resolver declined", map[string]interface{}{
		"queryId":   q.ID,
		"resolvers": o.Resolvers(),
	})
	return &models.ResolutionResult{
		Answer:   NoAnswerMessage,
		Resolver: ResolverNone,
		Status:   models.StatusServiceFailed,
		QueryID:  q.ID,
	}
}

// step runs one resolver. Errors and empty answers count as a decline.
func (o *Orchestrator) step(ctx context.Context, r Resolver, q *models.Query) *models.ResolutionResult {
	ctx, span := o.tracer.Start(ctx, "resolver."+r.Name())
	defer span.End()

	result, err := r.Resolve(ctx, q)
	if err != nil {
		span.RecordError(err)
		o.logger.Warn("resolver failed, trying next", map[string]interface{}{
			"queryId":  q.ID,
			"resolver": r.Name(),
			"error":    err.Error(),
		})
		return nil
	}
	if result == nil || strings.TrimSpace(result.Answer) == "" {
		span.SetAttributes(attribute.Bool("declined", true))
		return nil
	}

	if result.Resolver == "" {
		result.Resolver = r.Name()
	}
	if result.Status == "" {
		result.Status = models.StatusOK
	}
	result.QueryID = q.ID
	return result
}

func (o *Orchestrator) finish(ctx context.Context, q *models.Query, result *models.ResolutionResult, elapsed time.Duration) {
	metrics.ResolutionsTotal.WithLabelValues(result.Resolver, string(result.Status)).Inc()
	metrics.ResolutionDuration.WithLabelValues(result.Resolver).Observe(elapsed.Seconds())

	if o.recorder != nil {
		o.recorder.RecordResolution(ctx, result.Resolver, string(result.Status), elapsed)
	}

	if o.stats != nil {
		if err := o.stats.Record(ctx, result.Resolver, string(result.Status)); err != nil {
			o.logger.Warn("failed to record stats", map[string]interface{}{
				"queryId": q.ID,
				"error":   err.Error(),
			})
		}
	}

	o.logger.Info("query resolved", map[string]interface{}{
		"queryId":  q.ID,
		"resolver": result.Resolver,
		"status":   string(result.Status),
		"locale":   string(q.Locale()),
		"duration": elapsed.String(),
	})
}
