package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

// GetChart handles GET /api/chart
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request, userID string) {
	chart, err := h.svc.GetChart(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no chart yet; set birth data first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chart)
}

// TodayTransits handles GET /api/transits/today
func (h *Handler) TodayTransits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.TodayTransits(time.Now().UTC()))
}
