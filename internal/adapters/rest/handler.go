package rest

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/services"
	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/worker"
	"github.com/Dark-Folio-Press/sonifyr-sub002/pkg/auth"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc       *services.Orchestrator // Dependency on the Core Service
	pool      *worker.Pool           // Background analysis queue; may be nil
	jwtSecret []byte
	router    *http.ServeMux // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, pool *worker.Pool, jwtSecret []byte) *Handler {
	h := &Handler{
		svc:       svc,
		pool:      pool,
		jwtSecret: jwtSecret,
		router:    http.NewServeMux(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("POST /api/users", h.CreateUser)
	h.router.HandleFunc("PUT /api/users/birth-data", h.withAuth(h.UpdateBirthData))
	h.router.HandleFunc("GET /api/chart", h.withAuth(h.GetChart))
	h.router.HandleFunc("GET /api/transits/today", h.TodayTransits)

	h.router.HandleFunc("POST /api/playlists", h.withAuth(h.CreatePlaylist))
	h.router.HandleFunc("GET /api/playlists/{id}", h.withAuth(h.GetPlaylist))
	h.router.HandleFunc("POST /api/playlists/{id}/export", h.withAuth(h.ExportPlaylist))

	h.router.HandleFunc("GET /api/tracks/{id}/resonance", h.withAuth(h.TrackResonance))

	h.router.HandleFunc("POST /api/moods", h.withAuth(h.LogMood))
	h.router.HandleFunc("GET /api/moods", h.withAuth(h.ListMoods))
	h.router.HandleFunc("GET /api/moods/insights", h.withAuth(h.MoodInsights))
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Sonifyr is live"})
}

// withAuth verifies the bearer token and passes the user ID through.
func (h *Handler) withAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.ParseToken(h.jwtSecret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r, claims.UserID)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func isJSONContentType(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
