// File: internal/handlers/admin_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/lunaris-labs/converse/internal/repository/user"
	"github.com/lunaris-labs/converse/internal/services/admin_services"
)

// AdminHandler exposes the account management surface.
type AdminHandler struct {
	adminService *admin_services.AdminService
}

func NewAdminHandler(adminService *admin_services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetAllUsersHandler lists every account without credential material.
func (h *AdminHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// DeleteUserHandler removes an account and its conversation history.
func (h *AdminHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
