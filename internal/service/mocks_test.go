package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/gumwoo/umc-pr/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// TransactorMock hands out sqlmock-backed transactions. Guard reads receive the
// mock itself as their ExtContext; the repository mocks never touch it.
type TransactorMock struct {
	mock.Mock
	sqlx.ExtContext
}

var _ DB = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type RegionRepositoryMock struct {
	mock.Mock
}

var _ repository.RegionRepository = (*RegionRepositoryMock)(nil)

func (m *RegionRepositoryMock) Exists(ctx context.Context, ext sqlx.ExtContext, regionID int64) (bool, error) {
	args := m.Called(ctx, ext, regionID)
	return args.Bool(0), args.Error(1)
}

func (m *RegionRepositoryMock) List(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Region), args.Error(1)
}

type StoreRepositoryMock struct {
	mock.Mock
}

var _ repository.StoreRepository = (*StoreRepositoryMock)(nil)

func (m *StoreRepositoryMock) Exists(ctx context.Context, ext sqlx.ExtContext, storeID int64) (bool, error) {
	args := m.Called(ctx, ext, storeID)
	return args.Bool(0), args.Error(1)
}

func (m *StoreRepositoryMock) Create(ctx context.Context, store domain.NewStore) (int64, error) {
	args := m.Called(ctx, store)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StoreRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, storeID int64) (*domain.Store, error) {
	args := m.Called(ctx, ext, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *StoreRepositoryMock) ListByRegion(ctx context.Context, regionID int64) ([]domain.Store, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *StoreRepositoryMock) LockByID(ctx context.Context, tx *sqlx.Tx, storeID int64) error {
	args := m.Called(ctx, tx, storeID)
	return args.Error(0)
}

func (m *StoreRepositoryMock) ApplyNewReview(ctx context.Context, tx *sqlx.Tx, storeID int64) error {
	args := m.Called(ctx, tx, storeID)
	return args.Error(0)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) Create(ctx context.Context, tx *sqlx.Tx, review domain.NewReview) (int64, error) {
	args := m.Called(ctx, tx, review)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReviewRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, reviewID int64) (*domain.Review, error) {
	args := m.Called(ctx, ext, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Review, error) {
	args := m.Called(ctx, storeID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.Review, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

type MissionRepositoryMock struct {
	mock.Mock
}

var _ repository.MissionRepository = (*MissionRepositoryMock)(nil)

func (m *MissionRepositoryMock) Exists(ctx context.Context, ext sqlx.ExtContext, missionID int64) (bool, error) {
	args := m.Called(ctx, ext, missionID)
	return args.Bool(0), args.Error(1)
}

func (m *MissionRepositoryMock) Create(ctx context.Context, mission domain.NewMission) (int64, error) {
	args := m.Called(ctx, mission)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MissionRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, missionID int64) (*domain.Mission, error) {
	args := m.Called(ctx, ext, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MissionRepositoryMock) ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Mission, error) {
	args := m.Called(ctx, storeID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Mission), args.Error(1)
}

type ChallengeRepositoryMock struct {
	mock.Mock
}

var _ repository.ChallengeRepository = (*ChallengeRepositoryMock)(nil)

func (m *ChallengeRepositoryMock) HasOngoing(ctx context.Context, ext sqlx.ExtContext, userID, missionID int64) (bool, error) {
	args := m.Called(ctx, ext, userID, missionID)
	return args.Bool(0), args.Error(1)
}

func (m *ChallengeRepositoryMock) Create(ctx context.Context, tx *sqlx.Tx, challenge *domain.MissionChallenge) (int64, error) {
	args := m.Called(ctx, tx, challenge)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ChallengeRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, challengeID int64) (*domain.MissionChallenge, error) {
	args := m.Called(ctx, ext, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MissionChallenge), args.Error(1)
}

func (m *ChallengeRepositoryMock) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, challengeID int64) (*domain.MissionChallenge, error) {
	args := m.Called(ctx, tx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MissionChallenge), args.Error(1)
}

func (m *ChallengeRepositoryMock) UpdateStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	challengeID int64,
	status domain.ChallengeStatus,
	endAt *time.Time,
) error {
	args := m.Called(ctx, tx, challengeID, status, endAt)
	return args.Error(0)
}

func (m *ChallengeRepositoryMock) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.MissionChallenge, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.MissionChallenge), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepositoryMock) AddPreference(ctx context.Context, userID, foodCategoryID int64) error {
	args := m.Called(ctx, userID, foodCategoryID)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) ListPreferences(ctx context.Context, userID int64) ([]domain.Preference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Preference), args.Error(1)
}
