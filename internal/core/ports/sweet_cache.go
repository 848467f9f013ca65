package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SweetCache is a read-through cache for single catalog entries. A miss is
// (nil, nil); cache errors are reported but callers must treat them as misses.
type SweetCache interface {
	Get(ctx context.Context, id string) (*domain.Sweet, error)
	Set(ctx context.Context, s *domain.Sweet) error
	Invalidate(ctx context.Context, id string) error
}
