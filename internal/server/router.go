package server

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/playaway/gge-go/internal/authz"
	"github.com/playaway/gge-go/internal/gate"
	"github.com/playaway/gge-go/internal/handlers"
	mw2 "github.com/playaway/gge-go/internal/mw"
	"github.com/playaway/gge-go/internal/platform"
	"github.com/playaway/gge-go/internal/session"
	"github.com/playaway/gge-go/internal/types"
	"github.com/playaway/gge-go/internal/version"
)

type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
}

type Deps struct {
	Store      types.Store
	Sessions   *session.Store
	Authorizer authz.Authorizer
}

func BuildRouter(d Deps, opts Options) http.Handler {
	r := chi.NewRouter()
	if os.Getenv("GGE_ENV") == "local" || os.Getenv("GGE_ENV") == "dev" {
		r.Use(mw2.NoStore)
	}

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if opts.EnableCORS {
		origins := opts.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// tracing + logger + session token
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization"},
	}))
	r.Use(mw2.SessionToken)

	// one gate for every guarded route
	g := gate.New(
		&session.Provider{Store: d.Sessions},
		&platform.Directory{Users: d.Store},
	)

	auth := handlers.NewAuthHandler(d.Store, d.Sessions)
	users := handlers.NewUsersHandler(d.Store)
	clubs := handlers.NewClubsHandler(d.Store, d.Authorizer)
	events := handlers.NewEventsHandler(d.Store, d.Store, d.Authorizer)
	finance := handlers.NewFinanceHandler(d.Store)

	r.Get("/healthz", healthCheckHandler)
	r.Get("/version", handlers.VersionHandler)
	r.Get("/.well-known/gge", MetaHandler(opts))

	r.Post("/auth/register", auth.Register)
	r.Post("/auth/login", auth.Login)

	r.Group(func(ar chi.Router) {
		ar.Use(mw2.RequireAuthenticated(g))
		ar.Post("/auth/logout", auth.Logout)
		ar.Get("/api/me", auth.Me)
	})

	// public directory
	r.Get("/api/clubs", clubs.List)
	r.Get("/api/events", events.List)

	r.Group(func(ur chi.Router) {
		ur.Use(mw2.RequireApprovedUser(g))
		ur.Post("/api/events/{id}/registrations", events.Register)
	})

	r.Group(func(cr chi.Router) {
		cr.Use(mw2.RequireApprovedClubAdmin(g))
		cr.Patch("/api/clubs/{id}", clubs.Update)
		cr.Post("/admin/events", events.Create)
		cr.Get("/api/events/{id}/registrations", events.ListRegistrations)
	})

	r.Group(func(sr chi.Router) {
		sr.Use(mw2.RequireApprovedSuperAdmin(g))
		sr.Get("/admin/users", users.List)
		sr.Post("/admin/users/{id}/approve", users.Approve)
		sr.Post("/admin/users/{id}/reject", users.Reject)
		sr.Post("/admin/users/{id}/suspend", users.Suspend)
		sr.Post("/admin/clubs", clubs.Create)
		sr.Get("/admin/finance/summary", finance.Summary)
	})

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": version.Version,
	})
}
