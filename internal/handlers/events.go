package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playaway/gge-go/internal/authz"
	"github.com/playaway/gge-go/internal/gate"
	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/mw"
	"github.com/playaway/gge-go/internal/types"
)

const maxSquadSize = 40

type EventsHandler struct {
	Events types.EventStore
	Clubs  types.ClubStore
	Authz  authz.Authorizer
}

func NewEventsHandler(events types.EventStore, clubs types.ClubStore, az authz.Authorizer) *EventsHandler {
	return &EventsHandler{Events: events, Clubs: clubs, Authz: az}
}

// GET /api/events — public listing, soonest first.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListEvents(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// POST /admin/events (approved club admin; must manage the host club)
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HostClubID    string    `json:"hostClubId"`
		Name          string    `json:"name"`
		StartDate     time.Time `json:"startDate"`
		EndDate       time.Time `json:"endDate"`
		EntryFeeCents int64     `json:"entryFeeCents"`
		MaxTeams      int       `json:"maxTeams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.HostClubID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "name and hostClubId are required")
		return
	}
	if req.EndDate.Before(req.StartDate) {
		httpx.WriteError(w, http.StatusBadRequest, "endDate precedes startDate")
		return
	}
	if req.EntryFeeCents < 0 || req.MaxTeams < 0 {
		httpx.WriteError(w, http.StatusBadRequest, "entryFeeCents and maxTeams must not be negative")
		return
	}

	host, err := h.Clubs.GetClub(r.Context(), req.HostClubID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load host club")
		return
	}
	if host == nil {
		httpx.WriteError(w, http.StatusBadRequest, "host club does not exist")
		return
	}

	sess, _ := mw.SessionFromContext(r.Context())
	if !canManageClub(r, h.Authz, sess, host.ID) {
		httpx.WriteError(w, http.StatusForbidden, gate.MsgInsufficientPermissions)
		return
	}

	e := &types.Event{
		HostClubID:    req.HostClubID,
		Name:          req.Name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EntryFeeCents: req.EntryFeeCents,
		MaxTeams:      req.MaxTeams,
	}
	if err := h.Events.CreateEvent(r.Context(), e); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create event")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, e)
}

// POST /api/events/{id}/registrations (approved user)
// Bulk registration: the whole batch is validated before anything is
// inserted, so a bad row rejects the lot.
func (h *EventsHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := h.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		httpx.WriteError(w, http.StatusNotFound, "event not found")
		return
	}

	var req struct {
		ClubID string `json:"clubId"`
		Teams  []struct {
			Name      string `json:"name"`
			AgeGrade  string `json:"ageGrade"`
			SquadSize int    `json:"squadSize"`
		} `json:"teams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ClubID == "" || len(req.Teams) == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "clubId and at least one team are required")
		return
	}

	club, err := h.Clubs.GetClub(r.Context(), req.ClubID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load club")
		return
	}
	if club == nil {
		httpx.WriteError(w, http.StatusBadRequest, "club does not exist")
		return
	}

	for _, t := range req.Teams {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.AgeGrade) == "" {
			httpx.WriteError(w, http.StatusBadRequest, "every team needs a name and an age grade")
			return
		}
		if t.SquadSize < 1 || t.SquadSize > maxSquadSize {
			httpx.WriteError(w, http.StatusBadRequest, "squadSize out of range")
			return
		}
	}

	if event.MaxTeams > 0 {
		n, err := h.Events.CountRegistrations(r.Context(), eventID)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "failed to check capacity")
			return
		}
		if n+len(req.Teams) > event.MaxTeams {
			httpx.WriteError(w, http.StatusConflict, "event is at capacity")
			return
		}
	}

	sess, _ := mw.SessionFromContext(r.Context())
	regs := make([]*types.TeamRegistration, 0, len(req.Teams))
	for _, t := range req.Teams {
		regs = append(regs, &types.TeamRegistration{
			EventID:      eventID,
			ClubID:       req.ClubID,
			TeamName:     t.Name,
			AgeGrade:     t.AgeGrade,
			SquadSize:    t.SquadSize,
			FeeCents:     event.EntryFeeCents,
			RegisteredBy: sess.UserID,
		})
	}
	if err := h.Events.CreateRegistrations(r.Context(), regs); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to register teams")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"registrations": regs})
}

// GET /api/events/{id}/registrations (approved club admin)
func (h *EventsHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := h.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	if event == nil {
		httpx.WriteError(w, http.StatusNotFound, "event not found")
		return
	}

	regs, err := h.Events.ListRegistrationsByEvent(r.Context(), eventID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"registrations": regs})
}
