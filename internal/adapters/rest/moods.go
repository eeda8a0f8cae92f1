package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

type logMoodRequest struct {
	Date         string   `json:"date"`
	Mood         int      `json:"mood"`
	Energy       int      `json:"energy"`
	Emotions     []string `json:"emotions,omitempty"`
	JournalEntry string   `json:"journalEntry,omitempty"`
}

// LogMood handles POST /api/moods. One entry per date; re-posting a date
// replaces it.
func (h *Handler) LogMood(w http.ResponseWriter, r *http.Request, userID string) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req logMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry := domain.DailyMood{
		UserID:       userID,
		Date:         req.Date,
		Mood:         req.Mood,
		Energy:       req.Energy,
		Emotions:     req.Emotions,
		JournalEntry: req.JournalEntry,
	}
	if !entry.Valid() {
		writeError(w, http.StatusBadRequest, "date is required and mood/energy must be between 1 and 10")
		return
	}

	if err := h.svc.LogMood(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// ListMoods handles GET /api/moods?limit=n
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request, userID string) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	moods, err := h.svc.ListMoods(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, moods)
}

// MoodInsights handles GET /api/moods/insights
func (h *Handler) MoodInsights(w http.ResponseWriter, r *http.Request, userID string) {
	insights, err := h.svc.MoodInsights(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, insights)
}
