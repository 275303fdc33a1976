package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

// UsersHandler is the moderation surface. Approve, reject and suspend
// here are the only places account status changes.
type UsersHandler struct {
	Users types.UserStore
}

func NewUsersHandler(users types.UserStore) *UsersHandler {
	return &UsersHandler{Users: users}
}

// GET /admin/users?status=PENDING
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := identity.AccountStatus(strings.ToUpper(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		httpx.WriteError(w, http.StatusBadRequest, "unknown status")
		return
	}

	users, err := h.Users.ListUsersByStatus(r.Context(), status)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// POST /admin/users/{id}/approve
func (h *UsersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, identity.StatusApproved, "")
}

// POST /admin/users/{id}/reject  body: {"reason": "..."}
func (h *UsersHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "a rejection reason is required")
		return
	}
	h.setStatus(w, r, identity.StatusRejected, req.Reason)
}

// POST /admin/users/{id}/suspend
func (h *UsersHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, identity.StatusSuspended, "")
}

func (h *UsersHandler) setStatus(w http.ResponseWriter, r *http.Request, status identity.AccountStatus, reason string) {
	id := chi.URLParam(r, "id")

	u, err := h.Users.SetAccountStatus(r.Context(), id, status, reason)
	if err == types.ErrNotFound {
		httpx.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to update account status")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
