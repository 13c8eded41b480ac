package payment

import (
	"context"
	"time"
)

// ListParams controls pagination and free-text search over payments.
type ListParams struct {
	Page   int
	Size   int
	Search string // matches member name or description, case-insensitive
}

// Repository defines the operations for persisting and retrieving payments.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListParams) ([]*Payment, int, error)
	ListByMember(ctx context.Context, memberID int64, params ListParams) ([]*Payment, int, error)
	// ListPendingDueBetween returns pending payments whose due date falls in
	// [start, end], inclusive on both ends.
	ListPendingDueBetween(ctx context.Context, start, end time.Time) ([]*Payment, error)
}
