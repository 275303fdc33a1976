package session

import (
	"context"

	"github.com/playaway/gge-go/internal/identity"
)

// Provider implements the gate's SessionProvider on top of Store. The
// bearer token is expected in the context (see WithToken); a missing or
// unknown token is "not logged in", not an error.
type Provider struct {
	Store *Store
}

func (p *Provider) Resolve(ctx context.Context) (*identity.Session, error) {
	token, ok := TokenFrom(ctx)
	if !ok || token == "" {
		return nil, nil
	}
	return p.Store.Get(ctx, token)
}
