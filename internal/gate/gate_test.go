package gate

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/playaway/gge-go/internal/identity"
)

type fakeSessions struct {
	sess *identity.Session
	err  error
}

func (f *fakeSessions) Resolve(ctx context.Context) (*identity.Session, error) {
	return f.sess, f.err
}

type fakeDirectory struct {
	rec   *identity.DirectoryRecord
	err   error
	calls int
}

func (f *fakeDirectory) FindByUsername(ctx context.Context, username string) (*identity.DirectoryRecord, error) {
	f.calls++
	return f.rec, f.err
}

func sessionWith(role identity.Role) *identity.Session {
	return &identity.Session{
		Token:    "tok-1",
		UserID:   "u-1",
		Username: "aoife",
		Role:     role,
	}
}

func approvedDir() *fakeDirectory {
	return &fakeDirectory{rec: &identity.DirectoryRecord{
		UserID:        "u-1",
		Username:      "aoife",
		AccountStatus: identity.StatusApproved,
	}}
}

func TestRequireAuthenticated_NoSession(t *testing.T) {
	t.Parallel()

	g := New(&fakeSessions{}, approvedDir())
	d := g.RequireAuthenticated(context.Background())

	if d.Allowed {
		t.Fatalf("expected deny, got allow")
	}
	if d.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", d.Status)
	}
	if d.Body.Error != MsgAuthenticationRequired {
		t.Fatalf("error = %q, want %q", d.Body.Error, MsgAuthenticationRequired)
	}
}

func TestRequireAuthenticated_ProviderFailure(t *testing.T) {
	t.Parallel()

	g := New(&fakeSessions{err: errors.New("identity backend unreachable")}, approvedDir())
	d := g.RequireAuthenticated(context.Background())

	if d.Allowed || d.Status != http.StatusUnauthorized || d.Body.Error != MsgAuthenticationRequired {
		t.Fatalf("provider failure must deny 401 %q, got %+v", MsgAuthenticationRequired, d)
	}
}

func TestRequireRole_OutsideSetAlwaysDenied(t *testing.T) {
	t.Parallel()

	allowed := []identity.Role{identity.RoleClubAdmin, identity.RoleSuperAdmin}
	for _, role := range []identity.Role{identity.RoleUser, identity.RoleGuestAdmin, identity.RoleYouthOfficer} {
		g := New(&fakeSessions{sess: sessionWith(role)}, approvedDir())
		d := g.RequireRole(context.Background(), allowed...)
		if d.Allowed {
			t.Fatalf("role %s outside set must be denied", role)
		}
		if d.Status != http.StatusForbidden || d.Body.Error != MsgInsufficientPermissions {
			t.Fatalf("role %s: got %d %q, want 403 %q", role, d.Status, d.Body.Error, MsgInsufficientPermissions)
		}
	}
}

func TestRequireRole_AuthFailureTakesPrecedence(t *testing.T) {
	t.Parallel()

	// No session at all: the deny must be 401, never reported as a
	// permissions failure.
	g := New(&fakeSessions{}, approvedDir())
	d := g.RequireRole(context.Background(), identity.RoleSuperAdmin)
	if d.Status != http.StatusUnauthorized || d.Body.Error != MsgAuthenticationRequired {
		t.Fatalf("got %d %q, want 401 %q", d.Status, d.Body.Error, MsgAuthenticationRequired)
	}
}

func TestSuperAdminPassesEveryHelper(t *testing.T) {
	t.Parallel()

	g := New(&fakeSessions{sess: sessionWith(identity.RoleSuperAdmin)}, approvedDir())
	ctx := context.Background()

	checks := map[string]Decision{
		"RequireSuperAdmin":         g.RequireSuperAdmin(ctx),
		"RequireClubAdmin":          g.RequireClubAdmin(ctx),
		"RequireApprovedSuperAdmin": g.RequireApprovedSuperAdmin(ctx),
		"RequireApprovedClubAdmin":  g.RequireApprovedClubAdmin(ctx),
	}
	for name, d := range checks {
		if !d.Allowed {
			t.Fatalf("%s denied an approved SUPER_ADMIN: %+v", name, d)
		}
	}
}

func TestRequireApprovedUser_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		dir        *fakeDirectory
		wantError  string
		wantStatus identity.AccountStatus
		wantReason string
	}{
		{
			name:      "missing record",
			dir:       &fakeDirectory{},
			wantError: MsgAccountNotApproved,
		},
		{
			name:      "lookup failure",
			dir:       &fakeDirectory{err: errors.New("directory down")},
			wantError: MsgAccountNotApproved,
		},
		{
			name:       "pending",
			dir:        &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusPending}},
			wantError:  MsgAccountPending,
			wantStatus: identity.StatusPending,
		},
		{
			name:       "rejected with reason",
			dir:        &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusRejected, RejectionReason: "Invalid documentation"}},
			wantError:  MsgAccountRejected,
			wantStatus: identity.StatusRejected,
			wantReason: "Invalid documentation",
		},
		{
			name:       "suspended",
			dir:        &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusSuspended}},
			wantError:  MsgAccountSuspended,
			wantStatus: identity.StatusSuspended,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := New(&fakeSessions{sess: sessionWith(identity.RoleUser)}, tc.dir)
			d := g.RequireApprovedUser(context.Background())
			if d.Allowed {
				t.Fatalf("expected deny")
			}
			if d.Status != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", d.Status)
			}
			if d.Body.Error != tc.wantError {
				t.Fatalf("error = %q, want %q", d.Body.Error, tc.wantError)
			}
			if d.Body.AccountStatus != tc.wantStatus {
				t.Fatalf("accountStatus = %q, want %q", d.Body.AccountStatus, tc.wantStatus)
			}
			if d.Body.RejectionReason != tc.wantReason {
				t.Fatalf("rejectionReason = %q, want %q", d.Body.RejectionReason, tc.wantReason)
			}

			// Same underlying state, same deny.
			if again := g.RequireApprovedUser(context.Background()); again != d {
				t.Fatalf("second call differs: %+v vs %+v", again, d)
			}
		})
	}
}

func TestRequireApprovedUser_ApprovedAllows(t *testing.T) {
	t.Parallel()

	sess := sessionWith(identity.RoleUser)
	g := New(&fakeSessions{sess: sess}, approvedDir())
	d := g.RequireApprovedUser(context.Background())
	if !d.Allowed {
		t.Fatalf("approved account denied: %+v", d)
	}
	if d.Session != sess {
		t.Fatalf("allow must carry the original session unchanged")
	}
}

func TestRequireApprovedUser_IgnoresSessionStatusSnapshot(t *testing.T) {
	t.Parallel()

	// Session claims APPROVED but the directory says SUSPENDED; the
	// directory wins, and it is consulted on every call.
	sess := sessionWith(identity.RoleUser)
	sess.Status = identity.StatusApproved
	dir := &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusSuspended}}
	g := New(&fakeSessions{sess: sess}, dir)

	for i := 1; i <= 3; i++ {
		d := g.RequireApprovedUser(context.Background())
		if d.Allowed || d.Body.Error != MsgAccountSuspended {
			t.Fatalf("call %d: got %+v, want suspended deny", i, d)
		}
		if dir.calls != i {
			t.Fatalf("directory consulted %d times after %d calls", dir.calls, i)
		}
	}
}

func TestRequireApprovedRole_RoleFailureMasksStatusFailure(t *testing.T) {
	t.Parallel()

	// Wrong role AND pending status: the role deny must win.
	dir := &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusPending}}
	g := New(&fakeSessions{sess: sessionWith(identity.RoleUser)}, dir)

	d := g.RequireApprovedSuperAdmin(context.Background())
	if d.Body.Error != MsgInsufficientPermissions {
		t.Fatalf("error = %q, want %q", d.Body.Error, MsgInsufficientPermissions)
	}
	if dir.calls != 0 {
		t.Fatalf("directory must not be consulted after a role failure, got %d lookups", dir.calls)
	}
}

func TestRequireApprovedRole_RolePassSurfacesStatusDeny(t *testing.T) {
	t.Parallel()

	dir := &fakeDirectory{rec: &identity.DirectoryRecord{Username: "aoife", AccountStatus: identity.StatusPending}}
	g := New(&fakeSessions{sess: sessionWith(identity.RoleClubAdmin)}, dir)

	d := g.RequireApprovedClubAdmin(context.Background())
	if d.Allowed {
		t.Fatalf("expected deny")
	}
	if d.Body.Error != MsgAccountPending || d.Body.AccountStatus != identity.StatusPending {
		t.Fatalf("got %+v, want pending deny", d.Body)
	}
}

func TestAllChecksFailClosedWhenCollaboratorsFail(t *testing.T) {
	t.Parallel()

	// Both collaborators failing must still yield well-formed denies.
	g := New(
		&fakeSessions{err: errors.New("session backend down")},
		&fakeDirectory{err: errors.New("directory down")},
	)
	ctx := context.Background()

	checks := map[string]func(context.Context) Decision{
		"RequireAuthenticated":      g.RequireAuthenticated,
		"RequireSuperAdmin":         g.RequireSuperAdmin,
		"RequireClubAdmin":          g.RequireClubAdmin,
		"RequireApprovedUser":       g.RequireApprovedUser,
		"RequireApprovedSuperAdmin": g.RequireApprovedSuperAdmin,
		"RequireApprovedClubAdmin":  g.RequireApprovedClubAdmin,
	}
	for name, check := range checks {
		d := check(ctx)
		if d.Allowed {
			t.Fatalf("%s allowed despite failing collaborators", name)
		}
		if d.Status != http.StatusUnauthorized {
			t.Fatalf("%s: session failure must deny 401, got %d", name, d.Status)
		}
		if d.Body.Error == "" {
			t.Fatalf("%s: deny body missing error string", name)
		}
	}

	// Session resolvable, directory failing: approval checks deny 403.
	g = New(
		&fakeSessions{sess: sessionWith(identity.RoleSuperAdmin)},
		&fakeDirectory{err: errors.New("directory down")},
	)
	d := g.RequireApprovedSuperAdmin(ctx)
	if d.Allowed || d.Status != http.StatusForbidden || d.Body.Error != MsgAccountNotApproved {
		t.Fatalf("directory failure: got %+v, want 403 %q", d, MsgAccountNotApproved)
	}
}

func TestHappyPath_ApprovedSuperAdmin(t *testing.T) {
	t.Parallel()

	sess := sessionWith(identity.RoleSuperAdmin)
	g := New(&fakeSessions{sess: sess}, &fakeDirectory{rec: &identity.DirectoryRecord{
		UserID:        "u-1",
		Username:      "aoife",
		AccountStatus: identity.StatusApproved,
	}})

	d := g.RequireApprovedSuperAdmin(context.Background())
	if !d.Allowed {
		t.Fatalf("expected allow, got %+v", d)
	}
	if d.Session != sess {
		t.Fatalf("allow must return the original session unchanged")
	}
	if d.Status != 0 || d.Body.Error != "" {
		t.Fatalf("allow must not carry deny fields: %+v", d)
	}
}
