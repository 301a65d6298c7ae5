// File: internal/handlers/auth_handlers.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lunaris-labs/converse/internal/dtos"
	"github.com/lunaris-labs/converse/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	authService *user_services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *user_services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new account registrations.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	created, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user_services.ErrUsernameTooShort),
			errors.Is(err, user_services.ErrPasswordTooShort),
			errors.Is(err, user_services.ErrPasswordTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, user_services.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			// Storage failures stay generic; detail goes to the log only.
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, dtos.UserSummary{
		ID:        created.ID,
		Username:  created.Username,
		CreatedAt: created.CreatedAt,
	})
}

// Login validates credentials and returns the account summary. Unknown
// usernames and wrong passwords get the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.authService.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, user_services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, dtos.UserSummary{
		ID:        account.ID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	})
}
