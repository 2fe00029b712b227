package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"
	"craft-assistant/internal/pipeline"
	"craft-assistant/internal/stats"

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

type MockStats struct {
	mock.Mock
}

func (m *MockStats) Counts(ctx context.Context) (*stats.Snapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(*stats.Snapshot)
	return snapshot, args.Error(1)
}

func createTestRouter(t *testing.T, resolver Resolver, cfg RouterConfig) http.Handler {
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = time.Second
	}
	return NewRouter(resolver, cfg, logger.NewTestLogger(t))
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeChat(t *testing.T, rec *httptest.ResponseRecorder) chatResponse {
	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_Root(t *testing.T) {
	h := createTestRouter(t, new(MockResolver), RouterConfig{})
	rec := doRequest(h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"✅ Craft assistant is running!"}`, rec.Body.String())
}

func TestRouter_Chat(t *testing.T) {
	tests := []struct {
		name       string
		result     *models.ResolutionResult
		wantStatus int
	}{
		{
			name:       "answered",
			result:     &models.ResolutionResult{Answer: "🙏 Namaste!", Resolver: "intent", Status: models.StatusOK, QueryID: "q-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "blank after trimming",
			result:     &models.ResolutionResult{Answer: pipeline.ValidationMessage, Resolver: pipeline.ResolverNone, Status: models.StatusValidationFailed, QueryID: "q-2"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "generative failure",
			result:     &models.ResolutionResult{Answer: "❌ AI service error: status 500", Resolver: "fallback", Status: models.StatusServiceFailed, QueryID: "q-3"},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockResolver)
			resolver.On("Resolve", mock.Anything, "hello").Return(tt.result).Once()

			h := createTestRouter(t, resolver, RouterConfig{})
			rec := doRequest(h, http.MethodPost, "/chat", `{"message":"hello"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.result.QueryID, rec.Header().Get("X-Request-ID"))
			resp := decodeChat(t, rec)
			assert.Equal(t, tt.result.Answer, resp.Answer)
			resolver.AssertExpectations(t)
		})
	}
}

func TestRouter_ChatRejectsInvalidBodies(t *testing.T) {
	for name, body := range map[string]string{
		"missing message": `{}`,
		"wrong type":      `{"message": 12}`,
		"malformed json":  `{"message": `,
		"empty body":      ``,
	} {
		t.Run(name, func(t *testing.T) {
			resolver := new(MockResolver)
			h := createTestRouter(t, resolver, RouterConfig{})

			rec := doRequest(h, http.MethodPost, "/chat", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeChat(t, rec)
			assert.Equal(t, pipeline.ValidationMessage, resp.Answer)
			assert.NotEmpty(t, resp.Errors)
			resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}

func TestRouter_ChatAcceptsLongMessages(t *testing.T) {
	message := strings.Repeat("Do you ship handwoven baskets abroad? ", 500)
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, message).Return(&models.ResolutionResult{
		Answer: "🚚 We ship across India.", Resolver: "content_search", Status: models.StatusOK, QueryID: "q-long",
	}).Once()

	body, err := json.Marshal(chatRequest{Message: message})
	require.NoError(t, err)

	h := createTestRouter(t, resolver, RouterConfig{})
	rec := doRequest(h, http.MethodPost, "/chat", string(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "🚚 We ship across India.", decodeChat(t, rec).Answer)
	resolver.AssertExpectations(t)
}

func TestRouter_ChatRejectsOversizedBody(t *testing.T) {
	resolver := new(MockResolver)
	body, err := json.Marshal(chatRequest{Message: strings.Repeat("a", maxBodyBytes+1)})
	require.NoError(t, err)

	h := createTestRouter(t, resolver, RouterConfig{})
	rec := doRequest(h, http.MethodPost, "/chat", string(body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decodeChat(t, rec)
	assert.Equal(t, TooLargeMessage, resp.Answer)
	assert.NotEqual(t, pipeline.ValidationMessage, resp.Answer)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestRouter_CORS(t *testing.T) {
	h := createTestRouter(t, new(MockResolver), RouterConfig{AllowedOrigins: []string{"https://shop.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Ready(t *testing.T) {
	healthy := ReadinessCheck{Name: "postgres", Check: func(context.Context) error { return nil }}
	broken := ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	h := createTestRouter(t, new(MockResolver), RouterConfig{Checks: []ReadinessCheck{healthy}})
	assert.Equal(t, http.StatusOK, doRequest(h, http.MethodGet, "/ready", "").Code)

	h = createTestRouter(t, new(MockResolver), RouterConfig{Checks: []ReadinessCheck{healthy, broken}})
	rec := doRequest(h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := createTestRouter(t, new(MockResolver), RouterConfig{})

	assert.Equal(t, http.StatusOK, doRequest(h, http.MethodGet, "/health", "").Code)

	rec := doRequest(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_Stats(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := createTestRouter(t, new(MockResolver), RouterConfig{})
		assert.Equal(t, http.StatusNotFound, doRequest(h, http.MethodGet, "/stats", "").Code)
	})

	t.Run("counts", func(t *testing.T) {
		st := new(MockStats)
		st.On("Counts", mock.Anything).Return(&stats.Snapshot{
			Resolvers: map[string]int64{"intent": 3},
			Statuses:  map[string]int64{"ok": 3},
		}, nil)

		h := createTestRouter(t, new(MockResolver), RouterConfig{Stats: st})
		rec := doRequest(h, http.MethodGet, "/stats", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"resolvers":{"intent":3},"statuses":{"ok":3}}`, rec.Body.String())
	})

	t.Run("store down", func(t *testing.T) {
		st := new(MockStats)
		st.On("Counts", mock.Anything).Return(nil, errors.New("redis down"))

		h := createTestRouter(t, new(MockResolver), RouterConfig{Stats: st})
		assert.Equal(t, http.StatusServiceUnavailable, doRequest(h, http.MethodGet, "/stats", "").Code)
	})
}
