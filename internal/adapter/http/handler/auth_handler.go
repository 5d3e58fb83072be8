package handler

import (
	"encoding/json"
	"net/http"

	"github.com/demobank/demobank/internal/adapter/http/dto"
	"github.com/demobank/demobank/internal/session"
)

// AuthHandler handles the demo authentication endpoints.
type AuthHandler struct {
	sessions *session.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Service) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login authenticates the canonical demo user and binds it as current user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.sessions.Login(r.Context(), req.ClientCode, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		JWT: result.Token,
		User: dto.UserResponse{
			ClientCode: result.User.ClientCode,
			Name:       result.User.Name,
		},
	})
}

// Register creates a new demo user and binds it as current user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.sessions.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoginResponse{
		JWT: result.Token,
		User: dto.UserResponse{
			ClientCode: result.User.ClientCode,
			Name:       result.User.Name,
		},
	})
}
