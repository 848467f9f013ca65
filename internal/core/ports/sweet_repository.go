package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SearchFilter carries the conjunctive catalog query. A zero field means no
// constraint on that dimension. Price bounds are pointers because zero is a
// meaningful minimum.
type SearchFilter struct {
	Name     string          // case-insensitive substring match
	Category domain.Category // exact match
	MinPrice *float64        // inclusive
	MaxPrice *float64        // inclusive
}

// SweetUpdate is a partial update: nil fields are left untouched.
type SweetUpdate struct {
	Name        *string
	Description *string
	Category    *domain.Category
	Price       *float64
	Quantity    *int64
	ImageURL    *string
}

// SweetRepository defines persistence for catalog entries.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) error
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// FindAll returns every sweet, most recently created first.
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns sweets matching every provided filter, ordered by name.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, upd SweetUpdate) (*domain.Sweet, error)
	// Delete reports whether a record was actually removed; a missing id is
	// not an error.
	Delete(ctx context.Context, id string) (bool, error)
	// AdjustQuantity applies delta to the stock level as a single conditional
	// write: the mutation commits only while quantity+delta stays >= 0.
	// Returns domain.ErrSweetNotFound for an unknown id and
	// domain.ErrInsufficientStock when the condition fails.
	AdjustQuantity(ctx context.Context, id string, delta int64) (*domain.Sweet, error)
}
