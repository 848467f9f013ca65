package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// CreateSweetInput carries a validated new catalog entry.
type CreateSweetInput struct {
	Name        string
	Description string
	Category    domain.Category
	Price       float64
	Quantity    int64
	ImageURL    string
}

// SweetService defines the catalog use cases.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, upd SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Purchase decrements stock by quantity (must be > 0). Fails with
	// domain.ErrInsufficientStock when fewer than quantity units remain.
	Purchase(ctx context.Context, id string, quantity int64) (*domain.Sweet, error)
	// Restock increments stock by quantity (must be > 0; zero is rejected).
	Restock(ctx context.Context, id string, quantity int64) (*domain.Sweet, error)
}
