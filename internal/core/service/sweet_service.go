package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/api/metrics"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

type sweetService struct {
	repo  ports.SweetRepository
	cache ports.SweetCache
	log   zerolog.Logger
}

// NewSweetService returns a SweetService implementation. cache may be nil
// when no cache backend is configured.
func NewSweetService(repo ports.SweetRepository, cache ports.SweetCache, log zerolog.Logger) ports.SweetService {
	return &sweetService{repo: repo, cache: cache, log: log}
}

func (s *sweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	now := time.Now().UTC()
	sweet := &domain.Sweet{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(string(sweet.Category)).Inc()
	s.log.Info().Str("sweet_id", sweet.ID).Str("category", string(sweet.Category)).Msg("sweet created")
	return sweet, nil
}

func (s *sweetService) FindAll(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.FindAll(ctx)
}

// FindByID serves reads cache-first. Cache failures are logged and degrade to
// the repository.
func (s *sweetService) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("sweet_id", id).Msg("cache lookup failed")
		} else if cached != nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, sweet)
	return sweet, nil
}

func (s *sweetService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}
	return s.repo.Search(ctx, filter)
}

func (s *sweetService) Update(ctx context.Context, id string, upd ports.SweetUpdate) (*domain.Sweet, error) {
	if upd.Category != nil && !upd.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	sweet, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, id)
	s.log.Info().Str("sweet_id", id).Msg("sweet updated")
	return sweet, nil
}

func (s *sweetService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.cacheInvalidate(ctx, id)
		s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	}
	return deleted, nil
}

// Purchase decrements stock by quantity. The decrement and its stock check
// happen in one conditional repository write, so concurrent purchases against
// the same sweet can never drive the quantity negative.
func (s *sweetService) Purchase(ctx context.Context, id string, quantity int64) (*domain.Sweet, error) {
	if quantity <= 0 {
		metrics.PurchaseRejectionsTotal.WithLabelValues("invalid_amount").Inc()
		return nil, domain.ErrInvalidPurchaseAmount
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSweetNotFound):
			metrics.PurchaseRejectionsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.PurchaseRejectionsTotal.WithLabelValues("insufficient_stock").Inc()
			s.log.Info().Str("sweet_id", id).Int64("requested", quantity).Msg("purchase rejected: insufficient stock")
		}
		return nil, err
	}

	s.cacheInvalidate(ctx, id)
	metrics.PurchasesTotal.WithLabelValues(string(sweet.Category)).Inc()
	metrics.UnitsSoldTotal.Add(float64(quantity))
	s.log.Info().
		Str("sweet_id", id).
		Int64("quantity", quantity).
		Int64("remaining", sweet.Quantity).
		Msg("purchase completed")
	return sweet, nil
}

// Restock increments stock by quantity. Zero is rejected, not treated as a
// no-op.
func (s *sweetService) Restock(ctx context.Context, id string, quantity int64) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidRestockAmount
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	s.cacheInvalidate(ctx, id)
	metrics.RestocksTotal.Inc()
	s.log.Info().
		Str("sweet_id", id).
		Int64("quantity", quantity).
		Int64("in_stock", sweet.Quantity).
		Msg("restock completed")
	return sweet, nil
}

func (s *sweetService) cacheSet(ctx context.Context, sweet *domain.Sweet) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, sweet); err != nil {
		s.log.Warn().Err(err).Str("sweet_id", sweet.ID).Msg("failed to cache sweet")
	}
}

func (s *sweetService) cacheInvalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("sweet_id", id).Msg("failed to invalidate cache entry")
	}
}
