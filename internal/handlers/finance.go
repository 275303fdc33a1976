package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/types"
)

type FinanceHandler struct {
	Events types.EventStore
}

func NewFinanceHandler(events types.EventStore) *FinanceHandler {
	return &FinanceHandler{Events: events}
}

// GET /admin/finance/summary?year=2026 (approved super admin)
// Year defaults to the current one.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil || y < 2000 || y > 2100 {
			httpx.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}

	sum, err := h.Events.FinanceSummary(r.Context(), year)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to aggregate finances")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sum)
}
