package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/mw"
	"github.com/playaway/gge-go/internal/session"
	"github.com/playaway/gge-go/internal/types"
)

type AuthHandler struct {
	Users    types.UserStore
	Sessions *session.Store
}

func NewAuthHandler(users types.UserStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

// POST /auth/register
// New accounts always start PENDING; moderation flips them later.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || len(req.Password) < 8 {
		httpx.WriteError(w, http.StatusBadRequest, "username and a password of at least 8 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	u := &types.User{
		Username:      req.Username,
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  string(hash),
		Role:          identity.RoleUser,
		AccountStatus: identity.StatusPending,
	}
	if err := h.Users.CreateUser(r.Context(), u); err != nil {
		if err == types.ErrUsernameTaken {
			httpx.WriteError(w, http.StatusConflict, "username already taken")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, u)
}

// POST /auth/login
// Login succeeds for any account status; per-request gating decides what
// a non-approved account may actually do.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := h.Users.FindUserByUsername(r.Context(), req.Username)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "login unavailable")
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sess, err := h.Sessions.Create(r.Context(), u.ID, u.Username, u.Role, u.AccountStatus)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"token": sess.Token,
		"user":  u,
	})
}

// POST /auth/logout (authenticated)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if tok, ok := session.TokenFrom(r.Context()); ok {
		h.Sessions.Revoke(r.Context(), tok)
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/me (authenticated)
// Returns the session identity plus the directory's current view of the
// account, so clients can render pending/rejected states.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, _ := mw.SessionFromContext(r.Context())

	u, err := h.Users.FindUserByUsername(r.Context(), sess.Username)
	if err != nil || u == nil {
		httpx.WriteError(w, http.StatusNotFound, "account not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"account": u.Directory(),
	})
}
