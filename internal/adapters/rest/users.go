package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
	"github.com/Dark-Folio-Press/sonifyr-sub002/pkg/auth"
)

type createUserRequest struct {
	DisplayName string `json:"displayName"`
}

type createUserResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "displayName is required")
		return
	}

	user, err := h.svc.CreateUser(r.Context(), req.DisplayName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusCreated, createUserResponse{User: user, Token: token})
}

// UpdateBirthData handles PUT /api/users/birth-data
func (h *Handler) UpdateBirthData(w http.ResponseWriter, r *http.Request, userID string) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var bd domain.BirthData
	if err := json.NewDecoder(r.Body).Decode(&bd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if bd.BirthDate == "" {
		writeError(w, http.StatusBadRequest, "birthDate is required")
		return
	}

	chart, err := h.svc.SetBirthData(r.Context(), userID, bd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chart)
}
