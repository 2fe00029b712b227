package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/common/validation"
	"craft-assistant/internal/models"
	"craft-assistant/internal/pipeline"
)

const maxBodyBytes = 1 << 20

// TooLargeMessage answers bodies over maxBodyBytes.
const TooLargeMessage = "❌ Your message is too long. Please shorten it and try again."

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer    string   `json:"answer"`
	Resolver  string   `json:"resolver,omitempty"`
	SourceURL string   `json:"sourceUrl,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// Handler serves POST /chat.
type Handler struct {
	resolver Resolver
	logger   logger.Logger
}

func NewHandler(resolver Resolver, log logger.Logger) *Handler {
	return &Handler{resolver: resolver, logger: log}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("chat request rejected", map[string]interface{}{
				"reason": "body too large",
				"limit":  tooLarge.Limit,
			})
			writeJSON(w, http.StatusRequestEntityTooLarge, chatResponse{Answer: TooLargeMessage})
			return
		}
		h.reject(w, "failed to read body", []string{err.Error()})
		return
	}

	result, err := validation.ValidateChatRequest(body)
	if err != nil {
		h.reject(w, "malformed request", []string{err.Error()})
		return
	}
	if !result.Valid {
		h.reject(w, "invalid request", result.GetErrorMessages())
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.reject(w, "malformed request", []string{err.Error()})
		return
	}

	res := h.resolver.Resolve(r.Context(), req.Message)

	w.Header().Set("X-Request-ID", res.QueryID)
	writeJSON(w, statusCode(res.Status), chatResponse{
		Answer:    res.Answer,
		Resolver:  res.Resolver,
		SourceURL: res.SourceURL,
	})
}

func (h *Handler) reject(w http.ResponseWriter, reason string, details []string) {
	h.logger.Warn("chat request rejected", map[string]interface{}{
		"reason":  reason,
		"details": details,
	})
	writeJSON(w, http.StatusBadRequest, chatResponse{
		Answer: pipeline.ValidationMessage,
		Errors: details,
	})
}

func statusCode(s models.ResolutionStatus) int {
	switch s {
	case models.StatusOK:
		return http.StatusOK
	case models.StatusValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
