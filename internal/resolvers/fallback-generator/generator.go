package fallbackgenerator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	commonhttp "craft-assistant/internal/common/http"
)

var (
	ErrCompletionFailed  = errors.New("GENERATIVE_SERVICE_FAILED")
	ErrCompletionTimeout = errors.New("GENERATIVE_TIMEOUT")
)

// Generator is an opaque text-completion service.
type Generator interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIGenerator talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	baseURL string
	apiKey  string
	client  *commonhttp.Client
}

func NewOpenAIGenerator(baseURL, apiKey string, timeout time.Duration) *OpenAIGenerator {
	return &OpenAIGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  commonhttp.NewClient(timeout),
	}
}

// Complete makes exactly one request; there is no retry.
func (g *OpenAIGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload := chatCompletionRequest{
		Model: req.Model,
		Messages: []Message{
			{Role: RoleSystem, Content: req.Directive},
			{Role: RoleUser, Content: req.Query},
		},
		Temperature: req.Temperature,
	}

	headers := map[string]string{}
	if g.apiKey != "" {
		headers["Authorization"] = "Bearer " + g.apiKey
	}

	var resp chatCompletionResponse
	if err := g.client.PostJSON(ctx, g.baseURL+"/chat/completions", headers, payload, &resp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrCompletionTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrCompletionFailed)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrCompletionFailed)
	}
	return text, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
