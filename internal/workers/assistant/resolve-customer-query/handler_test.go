package resolvecustomerquery

import (
	"context"
	"errors"
	"testing"
	"time"

	"craft-assistant/internal/common/config"
	commonerrors "craft-assistant/internal/common/errors"
	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, text string) *models.ResolutionResult {
	args := m.Called(ctx, text)
	return args.Get(0).(*models.ResolutionResult)
}

func createTestConfig() *Config {
	return &Config{Enabled: true, MaxJobsActive: 1, Timeout: time.Second}
}

func createTestHandler(t *testing.T, resolver Resolver) *Handler {
	return NewHandler(createTestConfig(), resolver, nil, logger.NewTestLogger(t))
}

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) ExecuteWithRetry(ctx context.Context, commandFunc func(context.Context) (interface{}, error), operationName string) (interface{}, error) {
	args := m.Called(ctx, operationName)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return commandFunc(ctx)
}

func TestHandler_Execute_Success(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, "who is the founder?").Return(&models.ResolutionResult{
		Answer:   "👩‍💼 *Founder*: Divya Khandal",
		Resolver: "contact",
		Status:   models.StatusOK,
		QueryID:  "q-1",
	})

	output, err := createTestHandler(t, resolver).Execute(context.Background(), &Input{Message: "who is the founder?"})

	require.NoError(t, err)
	assert.Equal(t, &Output{
		Answer:   "👩‍💼 *Founder*: Divya Khandal",
		Resolver: "contact",
		Status:   "ok",
		QueryID:  "q-1",
	}, output)
}

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name      string
		result    *models.ResolutionResult
		wantCode  commonerrors.ErrorCode
		retryable bool
	}{
		{
			name:     "blank message",
			result:   &models.ResolutionResult{Answer: "❌ Please type something.", Status: models.StatusValidationFailed},
			wantCode: commonerrors.ErrCodeValidationFailed,
		},
		{
			name:      "generative failure",
			result:    &models.ResolutionResult{Answer: "❌ AI service error: status 503", Status: models.StatusServiceFailed},
			wantCode:  commonerrors.ErrCodeGenerativeServiceFailed,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockResolver)
			resolver.On("Resolve", mock.Anything, mock.Anything).Return(tt.result)

			output, err := createTestHandler(t, resolver).Execute(context.Background(), &Input{Message: " "})

			assert.Nil(t, output)
			stdErr, ok := commonerrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.Equal(t, tt.result.Answer, stdErr.Details)
		})
	}
}

func TestHandler_SendUsesRetryExecutor(t *testing.T) {
	executor := new(MockExecutor)
	executor.On("ExecuteWithRetry", mock.Anything, "complete job").Return(nil, nil).Once()

	h := NewHandler(createTestConfig(), new(MockResolver), executor, logger.NewTestLogger(t))

	calls := 0
	err := h.send(context.Background(), "complete job", func(context.Context) (interface{}, error) {
		calls++
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	executor.AssertExpectations(t)
}

func TestHandler_SendReturnsWorkflowEngineErrors(t *testing.T) {
	engineErr := commonerrors.NewWorkflowEngineError(errors.New("Zeebe operation 'complete job' failed after 3 attempts: connection refused"))
	executor := new(MockExecutor)
	executor.On("ExecuteWithRetry", mock.Anything, "complete job").Return(nil, engineErr).Once()

	h := NewHandler(createTestConfig(), new(MockResolver), executor, logger.NewTestLogger(t))
	err := h.send(context.Background(), "complete job", func(context.Context) (interface{}, error) {
		t.Fatal("command must not run when the executor gives up")
		return nil, nil
	})

	require.Error(t, err)
	assert.Equal(t, string(commonerrors.ErrCodeWorkflowEngineUnavailable), errorCode(err))
	executor.AssertExpectations(t)
}

func TestHandler_SendWithoutExecutorRunsOnce(t *testing.T) {
	h := createTestHandler(t, new(MockResolver))

	calls := 0
	err := h.send(context.Background(), "complete job", func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, 1, calls)
	assert.Equal(t, string(commonerrors.ErrCodeInternal), errorCode(err))
}

func TestParseInput(t *testing.T) {
	input, err := parseInput(`{"message":"hello","orderId":"A-1"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello", input.Message)

	for name, vars := range map[string]string{
		"empty variables": "",
		"missing message": `{"orderId":"A-1"}`,
		"wrong type":      `{"message":["a"]}`,
		"malformed":       `{"message":`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseInput(vars)
			stdErr, ok := commonerrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, commonerrors.ErrCodeValidationFailed, stdErr.Code)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		TaskType: {Enabled: true, MaxJobsActive: 7, Timeout: 90000},
	}}

	wc := LoadConfig(cfg)
	assert.True(t, wc.Enabled)
	assert.Equal(t, 7, wc.MaxJobsActive)
	assert.Equal(t, 90*time.Second, wc.Timeout)

	defaults := LoadConfig(&config.Config{})
	assert.Equal(t, 5, defaults.MaxJobsActive)
	assert.Equal(t, 30*time.Second, defaults.Timeout)
}
