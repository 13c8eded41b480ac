package member

import (
	"context"
	"time"
)

// ListParams controls pagination and free-text search over members.
type ListParams struct {
	Page   int
	Size   int
	Search string // matches name, email or phone, case-insensitive
}

// Repository defines the operations for persisting and retrieving members.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (*Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListParams) ([]*Member, int, error)
	// ListExpiringBetween returns members whose membership expiry falls in
	// [start, end], inclusive on both ends.
	ListExpiringBetween(ctx context.Context, start, end time.Time) ([]*Member, error)
}
