package mw

import (
	"context"
	"net/http"

	"github.com/playaway/gge-go/internal/gate"
	"github.com/playaway/gge-go/internal/httpx"
	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/session"
)

// SessionToken lifts the bearer token (if any) off the Authorization
// header into the request context. It never denies by itself; whether a
// session is required is the guards' call.
func SessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, ok := httpx.ExtractBearerToken(r.Header.Get("Authorization")); ok {
			r = r.WithContext(session.WithToken(r.Context(), tok))
		}
		next.ServeHTTP(w, r)
	})
}

// guard runs a gate check per request: deny writes the decision's status
// and body verbatim, allow stashes the session and continues. Every
// guarded route therefore answers identically for the same capability.
func guard(check func(ctx context.Context) gate.Decision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := check(r.Context())
			if !d.Allowed {
				httpx.WriteJSON(w, d.Status, d.Body)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), d.Session)))
		})
	}
}

func RequireAuthenticated(g *gate.Gate) func(http.Handler) http.Handler {
	return guard(g.RequireAuthenticated)
}

func RequireApprovedUser(g *gate.Gate) func(http.Handler) http.Handler {
	return guard(g.RequireApprovedUser)
}

func RequireApprovedRole(g *gate.Gate, roles ...identity.Role) func(http.Handler) http.Handler {
	return guard(func(ctx context.Context) gate.Decision {
		return g.RequireApprovedRole(ctx, roles...)
	})
}

func RequireApprovedSuperAdmin(g *gate.Gate) func(http.Handler) http.Handler {
	return guard(g.RequireApprovedSuperAdmin)
}

func RequireApprovedClubAdmin(g *gate.Gate) func(http.Handler) http.Handler {
	return guard(g.RequireApprovedClubAdmin)
}
