package rest

import "net/http"

// TrackResonance handles GET /api/tracks/{id}/resonance. Returns the stored
// harmonic analysis, or a freshly persisted simulated one when the worker
// has not processed the track yet.
func (h *Handler) TrackResonance(w http.ResponseWriter, r *http.Request, userID string) {
	trackID := r.PathValue("id")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "track id is required")
		return
	}

	analysis, err := h.svc.TrackResonance(r.Context(), userID, trackID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
