package platform

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

// MemoryStore keeps the whole platform in process memory. Used by tests
// and by `gge serve` when no database path is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]*types.User
	usersByName   map[string]string // username -> id
	clubs         map[string]*types.Club
	events        map[string]*types.Event
	registrations map[string][]*types.TeamRegistration // eventID -> regs
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]*types.User),
		usersByName:   make(map[string]string),
		clubs:         make(map[string]*types.Club),
		events:        make(map[string]*types.Event),
		registrations: make(map[string][]*types.TeamRegistration),
	}
}

func (s *MemoryStore) Close() error { return nil }

// ---------- users ----------

func (s *MemoryStore) CreateUser(ctx context.Context, u *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Username)
	if _, ok := s.usersByName[key]; ok {
		return types.ErrUsernameTaken
	}
	now := time.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	cp := *u
	s.users[u.ID] = &cp
	s.usersByName[key] = u.ID
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[strings.ToLower(username)]
	if !ok {
		return nil, nil
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryStore) ListUsersByStatus(ctx context.Context, status identity.AccountStatus) ([]*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.User, 0, len(s.users))
	for _, u := range s.users {
		if status != "" && u.AccountStatus != status {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) SetAccountStatus(ctx context.Context, id string, status identity.AccountStatus, reason string) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	u.AccountStatus = status
	u.RejectionReason = reason
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

// ---------- clubs ----------

func (s *MemoryStore) CreateClub(ctx context.Context, c *types.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	s.clubs[c.ID] = &cp
	return nil
}

func (s *MemoryStore) GetClub(ctx context.Context, id string) (*types.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clubs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) ListClubs(ctx context.Context) ([]*types.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Club, 0, len(s.clubs))
	for _, c := range s.clubs {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) UpdateClub(ctx context.Context, c *types.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.clubs[c.ID]
	if !ok {
		return types.ErrNotFound
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.clubs[c.ID] = &cp
	return nil
}

// ---------- events & registrations ----------

func (s *MemoryStore) CreateEvent(ctx context.Context, e *types.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *MemoryStore) GetEvent(ctx context.Context, id string) (*types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *MemoryStore) ListEvents(ctx context.Context) ([]*types.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Event, 0, len(s.events))
	for _, e := range s.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *MemoryStore) CreateRegistrations(ctx context.Context, regs []*types.TeamRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, r := range regs {
		if _, ok := s.events[r.EventID]; !ok {
			return types.ErrNotFound
		}
	}
	// validated above, safe to insert the whole batch
	for _, r := range regs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		r.CreatedAt = now
		cp := *r
		s.registrations[r.EventID] = append(s.registrations[r.EventID], &cp)
	}
	return nil
}

func (s *MemoryStore) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]*types.TeamRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regs := s.registrations[eventID]
	out := make([]*types.TeamRegistration, 0, len(regs))
	for _, r := range regs {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registrations[eventID]), nil
}

func (s *MemoryStore) FinanceSummary(ctx context.Context, year int) (*types.FinanceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := &types.FinanceSummary{Year: year}
	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		e := s.events[id]
		if e.StartDate.Year() != year {
			continue
		}
		ef := types.EventFinance{EventID: e.ID, EventName: e.Name}
		for _, r := range s.registrations[e.ID] {
			ef.Teams++
			ef.GrossFeeCents += r.FeeCents
		}
		sum.Events = append(sum.Events, ef)
		sum.TotalTeams += ef.Teams
		sum.TotalGrossFeeCents += ef.GrossFeeCents
	}
	return sum, nil
}
