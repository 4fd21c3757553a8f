package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/gumwoo/umc-pr/internal/repository"
	"github.com/jmoiron/sqlx"
)

const (
	minReviewScore = 0.0
	maxReviewScore = 5.0
)

type ReviewService interface {
	CreateReview(ctx context.Context, principal domain.Principal, input domain.NewReview) (*domain.Review, error)
	ListStoreReviews(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Review], error)
	ListMyReviews(ctx context.Context, principal domain.Principal, page pagination.Request) (pagination.Page[domain.Review], error)
}

type ReviewServiceImpl struct {
	BaseService
	stores  repository.StoreRepository
	reviews repository.ReviewRepository
}

func NewReviewService(
	db DB,
	log *slog.Logger,
	stores repository.StoreRepository,
	reviews repository.ReviewRepository,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		BaseService: NewBaseService(db, log),
		stores:      stores,
		reviews:     reviews,
	}
}

func reviewID(r domain.Review) int64 { return r.ID }

// CreateReview stores the review and refreshes the store score and review
// count in one transaction, with the store row locked. A missing store is
// reported before an out of range score.
func (s *ReviewServiceImpl) CreateReview(ctx context.Context, principal domain.Principal, input domain.NewReview) (*domain.Review, error) {
	const op = "internal.service.review.CreateReview"
	log := s.log.With(slog.String("op", op), slog.Int64("store_id", input.StoreID), slog.Int64("user_id", principal.UserID))

	input.UserID = principal.UserID

	var id int64

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := s.stores.LockByID(ctx, tx, input.StoreID); err != nil {
			return err
		}

		if math.IsNaN(input.Score) || input.Score < minReviewScore || input.Score > maxReviewScore {
			return invalid("score must be between 0 and 5", map[string]any{"score": input.Score})
		}

		var err error

		id, err = s.reviews.Create(ctx, tx, input)
		if err != nil {
			return err
		}

		return s.stores.ApplyNewReview(ctx, tx, input.StoreID)
	})
	if err != nil {
		return nil, toAppError(op, err)
	}

	review, err := s.reviews.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, toAppError(op, err)
	}

	log.Info("review created", slog.Int64("review_id", id))

	return review, nil
}

func (s *ReviewServiceImpl) ListStoreReviews(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Review], error) {
	const op = "internal.service.review.ListStoreReviews"

	if err := page.Validate(); err != nil {
		return pagination.Page[domain.Review]{}, err
	}

	if err := requireStore(ctx, s.stores, s.db, storeID); err != nil {
		return pagination.Page[domain.Review]{}, toAppError(op, err)
	}

	result, err := pagination.Paginate(ctx, page, func(ctx context.Context, req pagination.Request) ([]domain.Review, error) {
		return s.reviews.ListByStore(ctx, storeID, req)
	}, reviewID)
	if err != nil {
		return pagination.Page[domain.Review]{}, toAppError(op, err)
	}

	return result, nil
}

func (s *ReviewServiceImpl) ListMyReviews(ctx context.Context, principal domain.Principal, page pagination.Request) (pagination.Page[domain.Review], error) {
	const op = "internal.service.review.ListMyReviews"

	result, err := pagination.Paginate(ctx, page, func(ctx context.Context, req pagination.Request) ([]domain.Review, error) {
		return s.reviews.ListByUser(ctx, principal.UserID, req)
	}, reviewID)
	if err != nil {
		return pagination.Page[domain.Review]{}, toAppError(op, err)
	}

	return result, nil
}
