package http_handlers

import (
	"net/http"

	"github.com/stormiq/signals-api/internal/transport/http/response"
)

// AdminHandler holds the user-management endpoints. They are reserved in
// the API surface but not implemented yet.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// Users handles GET and POST /admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, struct{}{})
}

// DeleteUser handles DELETE /admin/users/{userID}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, struct{}{})
}
