package api

import (
	"database/sql"
	"net/http"

	"github.com/farmbook/farmbook/internal/store"
)

// SummaryHandler serves the packet overview.
type SummaryHandler struct {
	DB *sql.DB
}

// Get handles GET /api/summary.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := store.GetSummary(r.Context(), h.DB, GetClaims(r.Context()).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}
