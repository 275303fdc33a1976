package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playaway/gge-go/internal/authz"
	"github.com/playaway/gge-go/internal/gate"
	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/mw"
	"github.com/playaway/gge-go/internal/types"
)

type ClubsHandler struct {
	Clubs types.ClubStore
	Authz authz.Authorizer
}

func NewClubsHandler(clubs types.ClubStore, az authz.Authorizer) *ClubsHandler {
	return &ClubsHandler{Clubs: clubs, Authz: az}
}

// GET /api/clubs — public directory.
func (h *ClubsHandler) List(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.Clubs.ListClubs(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list clubs")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

// POST /admin/clubs (approved super admin)
func (h *ClubsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		City    string `json:"city"`
		Founded int    `json:"founded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Country) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name and country are required")
		return
	}

	c := &types.Club{Name: req.Name, Country: req.Country, City: req.City, Founded: req.Founded}
	if err := h.Clubs.CreateClub(r.Context(), c); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create club")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// PATCH /api/clubs/{id} (approved club admin; must manage this club)
func (h *ClubsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, _ := mw.SessionFromContext(r.Context())

	if !canManageClub(r, h.Authz, sess, id) {
		httpx.WriteError(w, http.StatusForbidden, gate.MsgInsufficientPermissions)
		return
	}

	cur, err := h.Clubs.GetClub(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load club")
		return
	}
	if cur == nil {
		httpx.WriteError(w, http.StatusNotFound, "club not found")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Country *string `json:"country"`
		City    *string `json:"city"`
		Founded *int    `json:"founded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name != nil {
		cur.Name = *req.Name
	}
	if req.Country != nil {
		cur.Country = *req.Country
	}
	if req.City != nil {
		cur.City = *req.City
	}
	if req.Founded != nil {
		cur.Founded = *req.Founded
	}

	if err := h.Clubs.UpdateClub(r.Context(), cur); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to update club")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cur)
}

// canManageClub applies the object-level rule on top of the role gate:
// SUPER_ADMIN manages every club, everyone else needs a tuple in the
// authorizer. Authorizer failures deny (fail closed).
func canManageClub(r *http.Request, az authz.Authorizer, sess *identity.Session, clubID string) bool {
	if sess.Role == identity.RoleSuperAdmin {
		return true
	}
	d, err := az.Check(r.Context(), authz.Request{
		Subject:  "user:" + sess.UserID,
		Relation: "manage",
		Object:   "club:" + clubID,
	})
	return err == nil && d.Allowed
}
