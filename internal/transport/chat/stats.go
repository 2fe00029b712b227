package chat

import (
	"net/http"

	"craft-assistant/internal/common/logger"
)

type StatsHandler struct {
	stats  StatsReader
	logger logger.Logger
}

func NewStatsHandler(stats StatsReader, log logger.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: log}
}

// Get serves GET /stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "stats are disabled"})
		return
	}

	snapshot, err := h.stats.Counts(r.Context())
	if err != nil {
		h.logger.Error("failed to read stats", map[string]interface{}{"error": err.Error()})
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
