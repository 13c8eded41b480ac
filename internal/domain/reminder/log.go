package reminder

import (
	"context"
	"time"
)

// DeliveryRecord notes that a trigger fired for a subject on a channel. The
// log is written on every successful send but only consulted in catch-up
// mode, where it keeps each missed trigger from firing twice.
type DeliveryRecord struct {
	ID         int64
	Kind       Kind
	SubjectID  int64
	Channel    Channel
	OffsetDays int
	SentOn     time.Time
	CreatedAt  time.Time
}

// Log persists delivery records.
type Log interface {
	Record(ctx context.Context, rec *DeliveryRecord) error
	Exists(ctx context.Context, kind Kind, subjectID int64, channel Channel, offsetDays int) (bool, error)
}
