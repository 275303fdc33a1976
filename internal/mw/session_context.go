package mw

import (
	"context"

	"github.com/playaway/gge-go/internal/identity"
)

type sessionContextKey struct{}

// WithSession stashes the allowed session for downstream handlers.
func WithSession(ctx context.Context, s *identity.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session a guard placed in the context.
// Handlers behind a guard can rely on ok being true.
func SessionFromContext(ctx context.Context) (*identity.Session, bool) {
	v := ctx.Value(sessionContextKey{})
	if v == nil {
		return nil, false
	}
	s, ok := v.(*identity.Session)
	return s, ok
}
