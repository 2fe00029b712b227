package fallbackgenerator

import (
	"context"
	"fmt"
	"testing"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func createTestConfig() *Config {
	return &Config{
		Model:              "gpt-4o-mini",
		Temperature:        0.6,
		DefaultDirective:   "english directive",
		SecondaryDirective: "hindi directive",
	}
}

func TestResolver_DirectiveFollowsLocale(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantDirective string
	}{
		{"latin script", "What materials do you use?", "english directive"},
		{"devanagari script", "आप कौन से उत्पाद बनाते हैं?", "hindi directive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			gen.On("Complete", mock.Anything, CompletionRequest{
				Directive:   tt.wantDirective,
				Query:       tt.query,
				Model:       "gpt-4o-mini",
				Temperature: 0.6,
			}).Return("reply", nil).Once()

			r := NewResolver(createTestConfig(), gen, logger.NewTestLogger(t))
			q := models.NewQuery(tt.query)

			result, err := r.Resolve(context.Background(), q)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "reply", result.Answer)
			assert.Equal(t, models.StatusOK, result.Status)
			assert.Equal(t, Name, result.Resolver)
			assert.Equal(t, q.ID, result.QueryID)
			gen.AssertExpectations(t)
		})
	}
}

func TestResolver_FailureBecomesAnswer(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"service failure", fmt.Errorf("%w: status 429: quota exceeded", ErrCompletionFailed)},
		{"timeout", fmt.Errorf("%w: context deadline exceeded", ErrCompletionTimeout)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			gen.On("Complete", mock.Anything, mock.Anything).Return("", tt.err)

			r := NewResolver(createTestConfig(), gen, logger.NewTestLogger(t))
			result, err := r.Resolve(context.Background(), models.NewQuery("anything"))

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "❌ AI service error: "+tt.err.Error(), result.Answer)
			assert.Equal(t, models.StatusServiceFailed, result.Status)
			gen.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}
