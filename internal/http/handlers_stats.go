package http

import (
	"log/slog"
	"net/http"
)

// handleStats aggregates the caller's expenses. The period query
// parameter defaults to "all"; unknown values fall back to the same
// semantics and are echoed in the response.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}

	summary, err := s.expenses.Stats(r.Context(), accountIDFrom(r.Context()), period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Stats aggregation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
