package member

import (
	"database/sql"
	"time"
)

// MembershipType is the plan a member is subscribed to.
type MembershipType string

const (
	TypeBasic    MembershipType = "BASIC"
	TypeStandard MembershipType = "STANDARD"
	TypePremium  MembershipType = "PREMIUM"
)

// Status is the member's standing with the gym.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Member is a gym member record.
type Member struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	MembershipType   MembershipType
	Status           Status
	JoinDate         time.Time
	MembershipExpiry time.Time
	Photo            sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
