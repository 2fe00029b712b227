package resolvecustomerquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	commonerrors "craft-assistant/internal/common/errors"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/metrics"
	"craft-assistant/internal/common/validation"
	"craft-assistant/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "resolve-customer-query"

// completeTimeout covers the completion send including retries.
const completeTimeout = 30 * time.Second

var ErrInvalidInput = errors.New("INVALID_INPUT")

// Resolver answers one customer message.
type Resolver interface {
	Resolve(ctx context.Context, text string) *models.ResolutionResult
}

// CommandExecutor sends Zeebe commands with retry; *camunda.Client implements it.
type CommandExecutor interface {
	ExecuteWithRetry(ctx context.Context, commandFunc func(context.Context) (interface{}, error), operationName string) (interface{}, error)
}

type Handler struct {
	config       *Config
	resolver     Resolver
	executor     CommandExecutor
	errorHandler *commonerrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver Resolver, executor CommandExecutor, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		executor:     executor,
		errorHandler: commonerrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.fail(client, job, err)
		return err
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(client, job, err)
		return err
	}

	return h.completeJob(client, job, output)
}

// Execute resolves the message. Validation and generative failures come
// back as StandardErrors so the job can be thrown or retried.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	result := h.resolver.Resolve(ctx, input.Message)

	switch result.Status {
	case models.StatusValidationFailed:
		return nil, commonerrors.NewValidationFailedError(result.Answer)
	case models.StatusServiceFailed:
		return nil, commonerrors.NewGenerativeServiceFailedError(errors.New(result.Answer))
	}

	return &Output{
		Answer:    result.Answer,
		Resolver:  result.Resolver,
		SourceURL: result.SourceURL,
		Status:    string(result.Status),
		QueryID:   result.QueryID,
	}, nil
}

func parseInput(variables string) (*Input, error) {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	vr, err := validation.ValidateChatRequest([]byte(variables))
	if err != nil {
		return nil, commonerrors.NewValidationFailedError(fmt.Sprintf("%v: %v", ErrInvalidInput, err))
	}
	if !vr.Valid {
		return nil, commonerrors.NewValidationFailedError(strings.Join(vr.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewValidationFailedError(fmt.Sprintf("%v: %v", ErrInvalidInput, err))
	}
	return &input, nil
}

// fail and completeJob use a fresh context; the job timeout may already be spent.
func (h *Handler) fail(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode(err)).Inc()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err.Error()})
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()
	err = h.send(ctx, "complete job", func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	})
	if err != nil {
		code := errorCode(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey":    job.Key,
			"errorCode": code,
			"error":     err.Error(),
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":   job.Key,
		"resolver": output.Resolver,
		"queryId":  output.QueryID,
	})
	return nil
}

// send runs a Zeebe command through the executor's retry policy, or once when
// no executor is configured.
func (h *Handler) send(ctx context.Context, operation string, commandFunc func(context.Context) (interface{}, error)) error {
	if h.executor == nil {
		_, err := commandFunc(ctx)
		return err
	}
	_, err := h.executor.ExecuteWithRetry(ctx, commandFunc, operation)
	return err
}

func errorCode(err error) string {
	if stdErr, ok := commonerrors.AsStandardError(err); ok {
		return string(stdErr.Code)
	}
	return string(commonerrors.ErrCodeInternal)
}
