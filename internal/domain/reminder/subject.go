package reminder

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subject is an immutable snapshot of a membership or payment taken at
// evaluation time. The scan and the manual trigger both work from this value,
// never from the live store record.
type Subject struct {
	Kind       Kind
	ID         int64
	Name       string
	Email      string
	Phone      string
	TargetDate time.Time

	// Membership details, set when Kind == KindMembership.
	MembershipType string

	// Payment details, set when Kind == KindPayment.
	Amount      decimal.Decimal
	Description string
}
