//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := NewRegionRepository(testDB, logger)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, testDB, seoulRegionID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, testDB, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	regions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, regions, 5)
	assert.Equal(t, "Busan", regions[0].Name)
}

func TestStoreRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewStoreRepository(testDB, logger)
	ctx := context.Background()

	hours := "10:00-22:00"
	category := chineseCategory

	id, err := repo.Create(ctx, domain.NewStore{
		Name:         "Golden Dragon",
		Address:      "7 Harbor Rd",
		CategoryID:   &category,
		RegionID:     seoulRegionID,
		OpeningHours: &hours,
	})
	require.NoError(t, err)

	store, err := repo.GetByID(ctx, testDB, id)
	require.NoError(t, err)
	assert.Equal(t, "Golden Dragon", store.Name)
	assert.Equal(t, "Seoul", store.RegionName)
	require.NotNil(t, store.CategoryName)
	assert.Equal(t, "Chinese", *store.CategoryName)
	assert.Equal(t, &hours, store.OpeningHours)
	assert.Nil(t, store.Contact)
	assert.Zero(t, store.Score)
	assert.Zero(t, store.ReviewCount)

	_, err = repo.Create(ctx, domain.NewStore{Name: "Golden Dragon", Address: "7 Harbor Rd", RegionID: seoulRegionID})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateStore)

	_, err = repo.Create(ctx, domain.NewStore{Name: "Nowhere", RegionID: 999})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	badCategory := int64(999)
	_, err = repo.Create(ctx, domain.NewStore{Name: "Odd", CategoryID: &badCategory, RegionID: seoulRegionID})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindResourceNotFound, appErr.Kind)
	assert.Equal(t, badCategory, appErr.Data["categoryId"])

	_, err = repo.GetByID(ctx, testDB, 999)
	assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)

	stores, err := repo.ListByRegion(ctx, seoulRegionID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, id, stores[0].ID)
}

func TestStoreRepository_ReviewStats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	stores := NewStoreRepository(testDB, logger)
	reviews := NewReviewRepository(testDB, logger)
	ctx := context.Background()

	userID := createUser(t, "stats@example.com")
	storeID := createStore(t, "Stats Diner")

	for _, score := range []float64{4.0, 3.0} {
		err := inTx(t, func(tx *sqlx.Tx) error {
			if err := stores.LockByID(ctx, tx, storeID); err != nil {
				return err
			}

			if _, err := reviews.Create(ctx, tx, domain.NewReview{StoreID: storeID, UserID: userID, Content: "ok", Score: score}); err != nil {
				return err
			}

			return stores.ApplyNewReview(ctx, tx, storeID)
		})
		require.NoError(t, err)
	}

	store, err := stores.GetByID(ctx, testDB, storeID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, store.Score, 1e-9)
	assert.Equal(t, 2, store.ReviewCount)

	err = inTx(t, func(tx *sqlx.Tx) error { return stores.LockByID(ctx, tx, 999) })
	assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)
}
