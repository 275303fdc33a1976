package authz

import "context"

// Decision is the outcome of a relationship check. Unlike the role gate,
// this layer answers object-level questions ("may this user manage this
// club"), keyed by subject/relation/object tuples.
type Decision struct {
	Allowed bool
	Reason  string
}

type Request struct {
	Subject  string         // e.g. "user:8b1f42"
	Relation string         // e.g. "manage"
	Object   string         // e.g. "club:amsterdam-gac"
	Context  map[string]any // optional: constraints passed to conditions
}

type Authorizer interface {
	Check(ctx context.Context, req Request) (Decision, error)
}
