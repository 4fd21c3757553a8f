package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/repository"
)

type StoreService interface {
	CreateStore(ctx context.Context, input domain.NewStore) (*domain.Store, error)
	GetStore(ctx context.Context, storeID int64) (*domain.Store, error)
	ListRegionStores(ctx context.Context, regionID int64) ([]domain.Store, error)
	ListRegions(ctx context.Context) ([]domain.Region, error)
}

type StoreServiceImpl struct {
	BaseService
	regions repository.RegionRepository
	stores  repository.StoreRepository
}

func NewStoreService(
	db DB,
	log *slog.Logger,
	regions repository.RegionRepository,
	stores repository.StoreRepository,
) *StoreServiceImpl {
	return &StoreServiceImpl{
		BaseService: NewBaseService(db, log),
		regions:     regions,
		stores:      stores,
	}
}

func (s *StoreServiceImpl) CreateStore(ctx context.Context, input domain.NewStore) (*domain.Store, error) {
	const op = "internal.service.store.CreateStore"
	log := s.log.With(slog.String("op", op), slog.Int64("region_id", input.RegionID))

	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("store name is required", map[string]any{"field": "name"})
	}

	if input.RegionID <= 0 {
		return nil, invalid("region id is required", map[string]any{"field": "regionId"})
	}

	if err := requireRegion(ctx, s.regions, s.db, input.RegionID); err != nil {
		return nil, toAppError(op, err)
	}

	id, err := s.stores.Create(ctx, input)
	if err != nil {
		return nil, toAppError(op, err)
	}

	store, err := s.stores.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, toAppError(op, err)
	}

	log.Info("store created", slog.Int64("store_id", id))

	return store, nil
}

func (s *StoreServiceImpl) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	const op = "internal.service.store.GetStore"

	store, err := s.stores.GetByID(ctx, s.db, storeID)
	if err != nil {
		return nil, toAppError(op, err)
	}

	return store, nil
}

func (s *StoreServiceImpl) ListRegionStores(ctx context.Context, regionID int64) ([]domain.Store, error) {
	const op = "internal.service.store.ListRegionStores"

	if err := requireRegion(ctx, s.regions, s.db, regionID); err != nil {
		return nil, toAppError(op, err)
	}

	stores, err := s.stores.ListByRegion(ctx, regionID)
	if err != nil {
		return nil, toAppError(op, err)
	}

	return stores, nil
}

func (s *StoreServiceImpl) ListRegions(ctx context.Context) ([]domain.Region, error) {
	const op = "internal.service.store.ListRegions"

	regions, err := s.regions.List(ctx)
	if err != nil {
		return nil, toAppError(op, err)
	}

	return regions, nil
}
