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
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (r *ReviewRepository) selectReviews() sq.SelectBuilder {
	return r.sq.Select(
		"rv.id", "rv.content", "rv.score", "rv.image_urls", "rv.store_id", "s.name AS store_name",
		"rv.user_id", "u.name AS user_name", "rv.created_at",
	).
		From("reviews rv").
		Join("stores s ON s.id = rv.store_id").
		Join("users u ON u.id = rv.user_id")
}

func (r *ReviewRepository) Create(ctx context.Context, tx *sqlx.Tx, review domain.NewReview) (int64, error) {
	const op = "internal.repository.postgres.review.Create"

	imageURLs := pq.StringArray(review.ImageURLs)
	if imageURLs == nil {
		imageURLs = pq.StringArray{}
	}

	query, args, err := r.sq.Insert("reviews").
		Columns("content", "score", "image_urls", "store_id", "user_id").
		Values(review.Content, review.Score, imageURLs, review.StoreID, review.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			if pqConstraint(err) == "reviews_store_id_fkey" {
				return 0, apperrors.Wrap(apperrors.KindStoreNotFound, err, "",
					map[string]any{"storeId": review.StoreID})
			}

			return 0, apperrors.Wrap(apperrors.KindUserNotFound, err, "",
				map[string]any{"userId": review.UserID})
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return id, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.Review, error) {
	const op = "internal.repository.postgres.review.GetByID"

	query, args, err := r.selectReviews().Where(sq.Eq{"rv.id": reviewID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var review domain.Review
	if err := sqlx.GetContext(ctx, ext, &review, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindReviewNotFound, "", map[string]any{"reviewId": reviewID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &review, nil
}

func (r *ReviewRepository) ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Review, error) {
	const op = "internal.repository.postgres.review.ListByStore"

	return r.list(ctx, op, sq.Eq{"rv.store_id": storeID}, page)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.Review, error) {
	const op = "internal.repository.postgres.review.ListByUser"

	return r.list(ctx, op, sq.Eq{"rv.user_id": userID}, page)
}

func (r *ReviewRepository) list(ctx context.Context, op string, scope sq.Eq, page pagination.Request) ([]domain.Review, error) {
	query, args, err := page.Apply(r.selectReviews().Where(scope), "rv.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	reviews := []domain.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return reviews, nil
}
