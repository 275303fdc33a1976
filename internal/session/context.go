package session

import "context"

type tokenKey struct{}

// WithToken stashes the caller's bearer token in the request context so
// the provider can resolve it without touching the framework request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(tokenKey{})
	if v == nil {
		return "", false
	}
	t, ok := v.(string)
	return t, ok
}
