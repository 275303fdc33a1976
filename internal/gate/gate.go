// Package gate is the single authorization checkpoint for the platform.
// Every guarded route resolves to exactly one Decision per request:
// Allow with the caller's session, or Deny with a stable HTTP status and
// JSON body. The gate owns no state and never returns an error; a failing
// collaborator always converts to the nearest Deny (fail closed).
package gate

import (
	"context"
	"net/http"

	"github.com/playaway/gge-go/internal/identity"
)

// SessionProvider resolves the current caller's session. A nil session
// with a nil error means "not logged in", which is a normal outcome, not
// a failure.
type SessionProvider interface {
	Resolve(ctx context.Context) (*identity.Session, error)
}

// UserDirectory returns the latest approval state of an account. A nil
// record with a nil error means the account does not exist.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*identity.DirectoryRecord, error)
}

// Deny reason strings are part of the client contract; do not reword.
const (
	MsgAuthenticationRequired  = "Authentication required"
	MsgInsufficientPermissions = "Insufficient permissions"
	MsgAccountPending          = "Account pending approval"
	MsgAccountRejected         = "Account has been rejected"
	MsgAccountSuspended        = "Account has been suspended"
	MsgAccountNotApproved      = "Account not approved"
)

// DenyBody is the JSON payload written on a denied request.
type DenyBody struct {
	Error           string                 `json:"error"`
	AccountStatus   identity.AccountStatus `json:"accountStatus,omitempty"`
	RejectionReason string                 `json:"rejectionReason,omitempty"`
}

// Decision is a tagged result: Allowed with Session set, or denied with
// Status and Body set. Callers branch on Allowed, never on types.
type Decision struct {
	Allowed bool
	Session *identity.Session
	Status  int
	Body    DenyBody
}

type Gate struct {
	sessions  SessionProvider
	directory UserDirectory
}

func New(sessions SessionProvider, directory UserDirectory) *Gate {
	return &Gate{sessions: sessions, directory: directory}
}

func allow(s *identity.Session) Decision {
	return Decision{Allowed: true, Session: s}
}

func deny(status int, body DenyBody) Decision {
	return Decision{Status: status, Body: body}
}

// ResolveSession returns the caller's session, nil when there is none.
// The error is non-nil only for a genuine provider failure.
func (g *Gate) ResolveSession(ctx context.Context) (*identity.Session, error) {
	return g.sessions.Resolve(ctx)
}

// RequireAuthenticated allows any caller with a resolvable session.
// Provider failures deny with 401 rather than surfacing an error.
func (g *Gate) RequireAuthenticated(ctx context.Context) Decision {
	sess, err := g.sessions.Resolve(ctx)
	if err != nil || sess == nil || sess.UserID == "" {
		return deny(http.StatusUnauthorized, DenyBody{Error: MsgAuthenticationRequired})
	}
	return allow(sess)
}

// RequireRole allows an authenticated caller whose role is in the given
// set. Authentication failure is reported as 401, never 403, so clients
// can tell "log in" apart from "not allowed". Membership is strict: the
// named helpers include SUPER_ADMIN in their sets explicitly.
func (g *Gate) RequireRole(ctx context.Context, roles ...identity.Role) Decision {
	d := g.RequireAuthenticated(ctx)
	if !d.Allowed {
		return d
	}
	for _, r := range roles {
		if d.Session.Role == r {
			return d
		}
	}
	return deny(http.StatusForbidden, DenyBody{Error: MsgInsufficientPermissions})
}

func (g *Gate) RequireSuperAdmin(ctx context.Context) Decision {
	return g.RequireRole(ctx, identity.RoleSuperAdmin)
}

func (g *Gate) RequireClubAdmin(ctx context.Context) Decision {
	return g.RequireRole(ctx, identity.RoleClubAdmin, identity.RoleSuperAdmin)
}

// RequireApprovedUser allows an authenticated caller whose account is
// APPROVED right now. The status is re-read from the directory on every
// call so a suspension takes effect on the very next request.
func (g *Gate) RequireApprovedUser(ctx context.Context) Decision {
	d := g.RequireAuthenticated(ctx)
	if !d.Allowed {
		return d
	}
	return g.requireApproved(ctx, d)
}

// RequireApprovedRole is RequireRole AND RequireApprovedUser, in that
// order: a role failure masks a status failure, but a role pass with a
// bad status surfaces the status-specific deny.
func (g *Gate) RequireApprovedRole(ctx context.Context, roles ...identity.Role) Decision {
	d := g.RequireRole(ctx, roles...)
	if !d.Allowed {
		return d
	}
	return g.requireApproved(ctx, d)
}

func (g *Gate) RequireApprovedSuperAdmin(ctx context.Context) Decision {
	return g.RequireApprovedRole(ctx, identity.RoleSuperAdmin)
}

func (g *Gate) RequireApprovedClubAdmin(ctx context.Context) Decision {
	return g.RequireApprovedRole(ctx, identity.RoleClubAdmin, identity.RoleSuperAdmin)
}

func (g *Gate) requireApproved(ctx context.Context, d Decision) Decision {
	rec, err := g.directory.FindByUsername(ctx, d.Session.Username)
	if err != nil || rec == nil {
		// Lookup failure and a missing record are indistinguishable to the
		// caller: neither must ever grant access, and a 404 would leak
		// whether the account exists.
		return deny(http.StatusForbidden, DenyBody{Error: MsgAccountNotApproved})
	}
	switch rec.AccountStatus {
	case identity.StatusApproved:
		return d
	case identity.StatusPending:
		return deny(http.StatusForbidden, DenyBody{
			Error:         MsgAccountPending,
			AccountStatus: identity.StatusPending,
		})
	case identity.StatusRejected:
		return deny(http.StatusForbidden, DenyBody{
			Error:           MsgAccountRejected,
			AccountStatus:   identity.StatusRejected,
			RejectionReason: rec.RejectionReason,
		})
	case identity.StatusSuspended:
		return deny(http.StatusForbidden, DenyBody{
			Error:         MsgAccountSuspended,
			AccountStatus: identity.StatusSuspended,
		})
	default:
		return deny(http.StatusForbidden, DenyBody{Error: MsgAccountNotApproved})
	}
}
