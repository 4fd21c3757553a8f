package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/jmoiron/sqlx"
)

type StoreRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewStoreRepository(db *sqlx.DB, log *slog.Logger) *StoreRepository {
	return &StoreRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (r *StoreRepository) selectStores() sq.SelectBuilder {
	return r.sq.Select(
		"s.id", "s.name", "s.address", "s.category_id", "fc.name AS category_name",
		"s.region_id", "rg.name AS region_name", "s.contact", "s.description",
		"s.opening_hours", "s.score", "s.review_count", "s.created_at",
	).
		From("stores s").
		Join("regions rg ON rg.id = s.region_id").
		LeftJoin("food_categories fc ON fc.id = s.category_id")
}

func (r *StoreRepository) Exists(ctx context.Context, ext sqlx.ExtContext, storeID int64) (bool, error) {
	const op = "internal.repository.postgres.store.Exists"

	return exists(ctx, ext, op, r.sq.Select("1").From("stores").Where(sq.Eq{"id": storeID}))
}

func (r *StoreRepository) Create(ctx context.Context, store domain.NewStore) (int64, error) {
	const op = "internal.repository.postgres.store.Create"

	query, args, err := r.sq.Insert("stores").
		Columns("name", "address", "category_id", "region_id", "contact", "description", "opening_hours").
		Values(store.Name, store.Address, store.CategoryID, store.RegionID, store.Contact, store.Description, store.OpeningHours).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return 0, apperrors.Wrap(apperrors.KindDuplicateStore, err, "",
				map[string]any{"name": store.Name, "address": store.Address})
		case codeForeignKeyViolation:
			if store.CategoryID != nil && pqConstraint(err) == "stores_category_id_fkey" {
				return 0, apperrors.Wrap(apperrors.KindResourceNotFound, err, "food category not found",
					map[string]any{"categoryId": *store.CategoryID})
			}

			return 0, apperrors.Wrap(apperrors.KindResourceNotFound, err, "region not found",
				map[string]any{"regionId": store.RegionID})
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return id, nil
}

func (r *StoreRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, storeID int64) (*domain.Store, error) {
	const op = "internal.repository.postgres.store.GetByID"

	query, args, err := r.selectStores().Where(sq.Eq{"s.id": storeID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var store domain.Store
	if err := sqlx.GetContext(ctx, ext, &store, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindStoreNotFound, "", map[string]any{"storeId": storeID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &store, nil
}

func (r *StoreRepository) ListByRegion(ctx context.Context, regionID int64) ([]domain.Store, error) {
	const op = "internal.repository.postgres.store.ListByRegion"

	query, args, err := r.selectStores().
		Where(sq.Eq{"s.region_id": regionID}).
		OrderBy("s.name", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	stores := []domain.Store{}
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return stores, nil
}

func (r *StoreRepository) LockByID(ctx context.Context, tx *sqlx.Tx, storeID int64) error {
	const op = "internal.repository.postgres.store.LockByID"

	query, args, err := r.sq.Select("id").
		From("stores").
		Where(sq.Eq{"id": storeID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.New(apperrors.KindStoreNotFound, "", map[string]any{"storeId": storeID})
		}

		return fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return nil
}

func (r *StoreRepository) ApplyNewReview(ctx context.Context, tx *sqlx.Tx, storeID int64) error {
	const op = "internal.repository.postgres.store.ApplyNewReview"

	query, args, err := r.sq.Update("stores").
		Set("score", sq.Expr("(SELECT COALESCE(AVG(score), 0) FROM reviews WHERE store_id = ?)", storeID)).
		Set("review_count", sq.Expr("review_count + 1")).
		Where(sq.Eq{"id": storeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}

	if affected == 0 {
		return apperrors.New(apperrors.KindStoreNotFound, "", map[string]any{"storeId": storeID})
	}

	return nil
}
