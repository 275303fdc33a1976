package types

import (
	"context"
	"errors"
	"time"

	"github.com/playaway/gge-go/internal/identity"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrNotFound      = errors.New("not found")
)

type User struct {
	ID              string                 `json:"id"`
	Username        string                 `json:"username"`
	Email           string                 `json:"email"`
	PasswordHash    string                 `json:"-"`
	Role            identity.Role          `json:"role"`
	AccountStatus   identity.AccountStatus `json:"accountStatus"`
	RejectionReason string                 `json:"rejectionReason,omitempty"`
	ClubID          string                 `json:"clubId,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// Directory returns the approval view the authorization gate consumes.
func (u *User) Directory() *identity.DirectoryRecord {
	return &identity.DirectoryRecord{
		UserID:          u.ID,
		Username:        u.Username,
		AccountStatus:   u.AccountStatus,
		RejectionReason: u.RejectionReason,
	}
}

type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city,omitempty"`
	Founded   int       `json:"founded,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Event struct {
	ID            string    `json:"id"`
	HostClubID    string    `json:"hostClubId"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	EntryFeeCents int64     `json:"entryFeeCents"`
	MaxTeams      int       `json:"maxTeams,omitempty"` // 0 = unlimited
	CreatedAt     time.Time `json:"createdAt"`
}

type TeamRegistration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	ClubID       string    `json:"clubId"`
	TeamName     string    `json:"teamName"`
	AgeGrade     string    `json:"ageGrade"`
	SquadSize    int       `json:"squadSize"`
	FeeCents     int64     `json:"feeCents"`
	RegisteredBy string    `json:"registeredBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

type EventFinance struct {
	EventID       string `json:"eventId"`
	EventName     string `json:"eventName"`
	Teams         int    `json:"teams"`
	GrossFeeCents int64  `json:"grossFeeCents"`
}

type FinanceSummary struct {
	Year               int            `json:"year"`
	Events             []EventFinance `json:"events"`
	TotalTeams         int            `json:"totalTeams"`
	TotalGrossFeeCents int64          `json:"totalGrossFeeCents"`
}

type Config struct {
	SessionTTLSeconds int64
}

type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	// ListUsersByStatus with an empty status lists every account.
	ListUsersByStatus(ctx context.Context, status identity.AccountStatus) ([]*User, error)
	SetAccountStatus(ctx context.Context, id string, status identity.AccountStatus, reason string) (*User, error)
}

type ClubStore interface {
	CreateClub(ctx context.Context, c *Club) error
	GetClub(ctx context.Context, id string) (*Club, error)
	ListClubs(ctx context.Context) ([]*Club, error)
	UpdateClub(ctx context.Context, c *Club) error
}

type EventStore interface {
	CreateEvent(ctx context.Context, e *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	// CreateRegistrations inserts the whole batch or nothing.
	CreateRegistrations(ctx context.Context, regs []*TeamRegistration) error
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]*TeamRegistration, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	FinanceSummary(ctx context.Context, year int) (*FinanceSummary, error)
}

// Store is the full persistence surface the server wires up.
type Store interface {
	UserStore
	ClubStore
	EventStore
	Close() error
}
