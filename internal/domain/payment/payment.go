package payment

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Status of a payment.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Type distinguishes what a payment is for.
type Type string

const (
	TypeMembership Type = "MEMBERSHIP"
	TypeTraining   Type = "PERSONAL_TRAINING"
	TypeOther      Type = "OTHER"
)

// Payment is a payment owed by or received from a member. The Member* fields
// are a denormalized snapshot of the owning member's contact details, filled
// by the repository via a join so reminder rendering needs no second lookup.
type Payment struct {
	ID          int64
	MemberID    int64
	Amount      decimal.Decimal
	DueDate     time.Time
	PaymentDate sql.NullTime
	Status      Status
	Type        Type
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	MemberName  string
	MemberEmail string
	MemberPhone string
}
