package session

import (
	"context"
	"testing"
	"time"

	"github.com/playaway/gge-go/internal/identity"
)

func TestStore_CreateGetRevoke(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, "u-1", "aoife", identity.RoleClubAdmin, identity.StatusApproved)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("session has no token")
	}

	got, err := s.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.UserID != "u-1" || got.Role != identity.RoleClubAdmin {
		t.Fatalf("Get = %+v", got)
	}

	s.Revoke(ctx, sess.Token)
	if got, err := s.Get(ctx, sess.Token); err != nil || got != nil {
		t.Fatalf("revoked token resolved to %+v, %v", got, err)
	}
}

func TestStore_ExpiredSessionResolvesNil(t *testing.T) {
	t.Parallel()

	s := NewStore(-time.Second) // already expired at mint time
	ctx := context.Background()

	sess, err := s.Create(ctx, "u-1", "aoife", identity.RoleUser, identity.StatusApproved)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, err := s.Get(ctx, sess.Token); err != nil || got != nil {
		t.Fatalf("expired token resolved to %+v, %v", got, err)
	}
}

func TestProvider_Resolve(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Hour)
	ctx := context.Background()
	sess, err := s.Create(ctx, "u-1", "aoife", identity.RoleUser, identity.StatusPending)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p := &Provider{Store: s}

	// no token in context: not logged in, not an error
	if got, err := p.Resolve(ctx); err != nil || got != nil {
		t.Fatalf("no-token Resolve = %+v, %v", got, err)
	}

	got, err := p.Resolve(WithToken(ctx, sess.Token))
	if err != nil || got == nil || got.Username != "aoife" {
		t.Fatalf("Resolve = %+v, %v", got, err)
	}

	if got, err := p.Resolve(WithToken(ctx, "bogus")); err != nil || got != nil {
		t.Fatalf("bogus token Resolve = %+v, %v", got, err)
	}
}
