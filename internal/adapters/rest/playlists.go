package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/ports"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/worker"
)

const errCodeNoConfidentMatch = "NO_CONFIDENT_MATCH"

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type exportPlaylistRequest struct {
	SpotifyToken string `json:"spotifyToken"`
}

// CreatePlaylist handles POST /api/playlists
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request, userID string) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	playlist, err := h.svc.GeneratePlaylist(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no chart yet; set birth data first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.queueAnalysis(r, userID, playlist)

	w.Header().Set("Location", "/api/playlists/"+playlist.ID)
	writeJSON(w, http.StatusCreated, playlist)
}

// queueAnalysis submits every playlist track for background harmonic
// analysis. Best effort: a missing pool or chart only skips enrichment.
func (h *Handler) queueAnalysis(r *http.Request, userID string, playlist domain.Playlist) {
	if h.pool == nil {
		return
	}

	var chart *domain.BirthChart
	if c, err := h.svc.GetChart(r.Context(), userID); err == nil {
		chart = &c
	}

	for _, t := range playlist.Tracks {
		h.pool.Submit(worker.Job{
			TrackID:    t.ID,
			PreviewURL: t.PreviewURL,
			Chart:      chart,
		})
	}
}

// GetPlaylist handles GET /api/playlists/{id}
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request, userID string) {
	playlistID := r.PathValue("id")
	if playlistID == "" {
		writeError(w, http.StatusBadRequest, "playlist id is required")
		return
	}

	playlist, err := h.svc.GetPlaylist(r.Context(), userID, playlistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// ExportPlaylist handles POST /api/playlists/{id}/export
func (h *Handler) ExportPlaylist(w http.ResponseWriter, r *http.Request, userID string) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	playlistID := r.PathValue("id")
	if playlistID == "" {
		writeError(w, http.StatusBadRequest, "playlist id is required")
		return
	}

	var req exportPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SpotifyToken == "" {
		writeError(w, http.StatusBadRequest, "spotifyToken is required")
		return
	}

	playlist, err := h.svc.ExportPlaylist(r.Context(), userID, playlistID, req.SpotifyToken)
	if err != nil {
		var matchErr *ports.NoConfidentMatchError
		switch {
		case errors.As(err, &matchErr):
			writeErrorWithCode(w, http.StatusUnprocessableEntity, matchErr.Error(), errCodeNoConfidentMatch)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "playlist not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}
