package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playaway/gge-go/internal/identity"
)

// Store keeps bearer-token sessions in memory. Sessions are ephemeral by
// design; a restart logs everyone out.
type Store struct {
	mu      sync.RWMutex
	byToken map[string]*identity.Session
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		byToken: make(map[string]*identity.Session),
		ttl:     ttl,
	}
}

// Create mints a new session for the given identity and returns it with
// the bearer token set.
func (s *Store) Create(ctx context.Context, userID, username string, role identity.Role, status identity.AccountStatus) (*identity.Session, error) {
	now := time.Now().UTC()
	sess := &identity.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Role:      role,
		Status:    status,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.byToken[sess.Token] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get resolves a token to its session. Unknown or expired tokens return
// nil, nil; expired entries are dropped on the way out.
func (s *Store) Get(ctx context.Context, token string) (*identity.Session, error) {
	s.mu.RLock()
	sess, ok := s.byToken[token]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.byToken, token)
		s.mu.Unlock()
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

// Revoke drops a token. Revoking an unknown token is a no-op.
func (s *Store) Revoke(ctx context.Context, token string) {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
}
