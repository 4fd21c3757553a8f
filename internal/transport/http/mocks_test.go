package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
)

type StoreServiceMock struct {
	mock.Mock
}

func (m *StoreServiceMock) CreateStore(ctx context.Context, input domain.NewStore) (*domain.Store, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *StoreServiceMock) GetStore(ctx context.Context, storeID int64) (*domain.Store, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *StoreServiceMock) ListRegionStores(ctx context.Context, regionID int64) ([]domain.Store, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *StoreServiceMock) ListRegions(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Region), args.Error(1)
}

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) CreateReview(ctx context.Context, principal domain.Principal, input domain.NewReview) (*domain.Review, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReviewServiceMock) ListStoreReviews(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Review], error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).(pagination.Page[domain.Review]), args.Error(1)
}

func (m *ReviewServiceMock) ListMyReviews(ctx context.Context, principal domain.Principal, page pagination.Request) (pagination.Page[domain.Review], error) {
	args := m.Called(ctx, principal, page)
	return args.Get(0).(pagination.Page[domain.Review]), args.Error(1)
}

type MissionServiceMock struct {
	mock.Mock
}

func (m *MissionServiceMock) CreateMission(ctx context.Context, input domain.NewMission) (*domain.Mission, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MissionServiceMock) ListStoreMissions(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Mission], error) {
	args := m.Called(ctx, storeID, page)
	return args.Get(0).(pagination.Page[domain.Mission]), args.Error(1)
}

func (m *MissionServiceMock) ListMyChallenges(ctx context.Context, principal domain.Principal, page pagination.Request) (pagination.Page[domain.MissionChallenge], error) {
	args := m.Called(ctx, principal, page)
	return args.Get(0).(pagination.Page[domain.MissionChallenge]), args.Error(1)
}

func (m *MissionServiceMock) StartChallenge(ctx context.Context, principal domain.Principal, missionID int64) (*domain.MissionChallenge, error) {
	args := m.Called(ctx, principal, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MissionChallenge), args.Error(1)
}

func (m *MissionServiceMock) CompleteChallenge(ctx context.Context, principal domain.Principal, challengeID int64) (*domain.MissionChallenge, error) {
	args := m.Called(ctx, principal, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.MissionChallenge), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) SignUp(ctx context.Context, input domain.NewUser) (*domain.UserWithPreferences, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.UserWithPreferences), args.Error(1)
}

type PingerMock struct {
	mock.Mock
}

func (m *PingerMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
