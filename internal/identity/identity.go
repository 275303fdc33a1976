package identity

import "time"

// Role is the closed set of platform roles. Roles are not totally ordered:
// SUPER_ADMIN satisfies every narrower check, but CLUB_ADMIN and
// GUEST_ADMIN are otherwise disjoint.
type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"
	RoleClubAdmin    Role = "CLUB_ADMIN"
	RoleGuestAdmin   Role = "GUEST_ADMIN"
	RoleYouthOfficer Role = "YOUTH_OFFICER"
	RoleUser         Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleClubAdmin, RoleGuestAdmin, RoleYouthOfficer, RoleUser:
		return true
	}
	return false
}

// AccountStatus is the administrative approval state of an account,
// independent of role. Mutated only by moderation flows.
type AccountStatus string

const (
	StatusPending   AccountStatus = "PENDING"
	StatusApproved  AccountStatus = "APPROVED"
	StatusRejected  AccountStatus = "REJECTED"
	StatusSuspended AccountStatus = "SUSPENDED"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Session is the per-request identity snapshot resolved from a bearer
// token. It may carry the account status as of login time; authorization
// never trusts that snapshot and always re-reads the directory.
type Session struct {
	Token     string        `json:"-"`
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status,omitempty"`
	IssuedAt  time.Time     `json:"issuedAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// DirectoryRecord is the freshly-fetched approval view of an account.
type DirectoryRecord struct {
	UserID          string        `json:"userId"`
	Username        string        `json:"username"`
	AccountStatus   AccountStatus `json:"accountStatus"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
}
