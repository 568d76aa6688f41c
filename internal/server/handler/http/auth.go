// Package http provides HTTP handlers for user registration and sign-in.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PhantomXD-nepal/np-wallet/internal/models"
	"github.com/PhantomXD-nepal/np-wallet/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account and returns its public profile.
	Register(ctx context.Context, email, password, firstName, lastName string) (models.UserProfile, error)
	// SignIn verifies credentials and issues a bearer session.
	SignIn(ctx context.Context, email, password string) (models.UserProfile, models.Session, error)
}

// AuthHandler handles HTTP requests for registration and sign-in.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// registerRequest is the JSON payload for account registration.
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// signInRequest is the JSON payload for sign-in.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
// It expects a JSON body with non-empty "email" and "password" fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeError(w, http.StatusConflict, "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"user": profile})
}

// SignIn handles POST /api/auth/signin.
// On success it returns the user profile and a bearer session the client
// may cache for offline use.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, session, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user":    profile,
		"session": session,
	})
}
