// package repository defines the persistence contracts used by the services.
//
// Methods that take an sqlx.ExtContext can run on the pool or inside a
// transaction; methods that take *sqlx.Tx must run inside one. Driver errors
// that have a domain meaning (unique and foreign key violations) come back as
// *apperrors.Error, everything else is wrapped with the operation name.
package repository

import (
	"context"
	"time"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/jmoiron/sqlx"
)

type RegionRepository interface {
	Exists(ctx context.Context, ext sqlx.ExtContext, regionID int64) (bool, error)
	List(ctx context.Context) ([]domain.Region, error)
}

type StoreRepository interface {
	Exists(ctx context.Context, ext sqlx.ExtContext, storeID int64) (bool, error)

	// Create returns apperrors.ErrDuplicateStore when (name, address) is taken and
	// apperrors.ErrResourceNotFound when the region or category does not exist.
	Create(ctx context.Context, store domain.NewStore) (int64, error)

	// GetByID returns apperrors.ErrStoreNotFound when the store does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, storeID int64) (*domain.Store, error)

	ListByRegion(ctx context.Context, regionID int64) ([]domain.Store, error)

	// LockByID takes a row lock on the store for the rest of tx.
	// It returns apperrors.ErrStoreNotFound when the store does not exist.
	LockByID(ctx context.Context, tx *sqlx.Tx, storeID int64) error

	// ApplyNewReview recomputes the store score from its reviews and bumps review_count.
	ApplyNewReview(ctx context.Context, tx *sqlx.Tx, storeID int64) error
}

type ReviewRepository interface {
	// Create returns apperrors.ErrUserNotFound when the author does not exist.
	Create(ctx context.Context, tx *sqlx.Tx, review domain.NewReview) (int64, error)

	// GetByID returns apperrors.ErrReviewNotFound when the review does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.Review, error)

	ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.Review, error)
}

type MissionRepository interface {
	Exists(ctx context.Context, ext sqlx.ExtContext, missionID int64) (bool, error)

	// Create expects reward and deadline to be set.
	Create(ctx context.Context, mission domain.NewMission) (int64, error)

	// GetByID returns apperrors.ErrMissionNotFound when the mission does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, missionID int64) (*domain.Mission, error)

	ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Mission, error)
}

type ChallengeRepository interface {
	HasOngoing(ctx context.Context, ext sqlx.ExtContext, userID, missionID int64) (bool, error)

	// Create returns apperrors.ErrDuplicateMissionChallenge when the user already has an
	// ONGOING challenge for the mission.
	Create(ctx context.Context, tx *sqlx.Tx, challenge *domain.MissionChallenge) (int64, error)

	// GetByID returns nil when the challenge does not exist.
	GetByID(ctx context.Context, ext sqlx.ExtContext, challengeID int64) (*domain.MissionChallenge, error)

	// GetByIDWithLock is GetByID with a row lock on the challenge ("FOR UPDATE").
	GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, challengeID int64) (*domain.MissionChallenge, error)

	UpdateStatus(ctx context.Context, tx *sqlx.Tx, challengeID int64, status domain.ChallengeStatus, endAt *time.Time) error

	ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.MissionChallenge, error)
}

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create returns apperrors.ErrDuplicateUserEmail when the email is taken.
	Create(ctx context.Context, user domain.NewUser) (int64, error)

	// AddPreference returns apperrors.ErrResourceNotFound when the category does not exist.
	AddPreference(ctx context.Context, userID, foodCategoryID int64) error

	// GetByID returns apperrors.ErrUserNotFound when the user does not exist.
	GetByID(ctx context.Context, userID int64) (*domain.User, error)

	ListPreferences(ctx context.Context, userID int64) ([]domain.Preference, error)
}
