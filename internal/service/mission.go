package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/gumwoo/umc-pr/internal/repository"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type MissionService interface {
	CreateMission(ctx context.Context, input domain.NewMission) (*domain.Mission, error)
	ListStoreMissions(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Mission], error)
	ListMyChallenges(ctx context.Context, principal domain.Principal, page pagination.Request) (pagination.Page[domain.MissionChallenge], error)
	StartChallenge(ctx context.Context, principal domain.Principal, missionID int64) (*domain.MissionChallenge, error)
	CompleteChallenge(ctx context.Context, principal domain.Principal, challengeID int64) (*domain.MissionChallenge, error)
}

type MissionServiceImpl struct {
	BaseService
	stores     repository.StoreRepository
	missions   repository.MissionRepository
	challenges repository.ChallengeRepository
	now        func() time.Time
}

func NewMissionService(
	db DB,
	log *slog.Logger,
	stores repository.StoreRepository,
	missions repository.MissionRepository,
	challenges repository.ChallengeRepository,
) *MissionServiceImpl {
	return &MissionServiceImpl{
		BaseService: NewBaseService(db, log),
		stores:      stores,
		missions:    missions,
		challenges:  challenges,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *MissionServiceImpl) CreateMission(ctx context.Context, input domain.NewMission) (*domain.Mission, error) {
	const op = "internal.service.mission.CreateMission"
	log := s.log.With(slog.String("op", op), slog.Int64("store_id", input.StoreID))

	if strings.TrimSpace(input.Title) == "" {
		return nil, invalid("mission title is required", map[string]any{"field": "title"})
	}

	if input.Reward != nil && *input.Reward < 0 {
		return nil, invalid("reward must not be negative", map[string]any{"reward": *input.Reward})
	}

	if input.Reward != nil && *input.Reward > domain.MaxMissionReward {
		return nil, invalid("reward is too large",
			map[string]any{"reward": *input.Reward, "maxReward": domain.MaxMissionReward})
	}

	if err := requireStore(ctx, s.stores, s.db, input.StoreID); err != nil {
		return nil, toAppError(op, err)
	}

	id, err := s.missions.Create(ctx, input.WithDefaults(s.now()))
	if err != nil {
		return nil, toAppError(op, err)
	}

	mission, err := s.missions.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, toAppError(op, err)
	}

	log.Info("mission created", slog.Int64("mission_id", id))

	return mission, nil
}

func (s *MissionServiceImpl) ListStoreMissions(ctx context.Context, storeID int64, page pagination.Request) (pagination.Page[domain.Mission], error) {
	const op = "internal.service.mission.ListStoreMissions"

	if err := page.Validate(); err != nil {
		return pagination.Page[domain.Mission]{}, err
	}

	if err := requireStore(ctx, s.stores, s.db, storeID); err != nil {
		return pagination.Page[domain.Mission]{}, toAppError(op, err)
	}

	result, err := pagination.Paginate(ctx, page, func(ctx context.Context, req pagination.Request) ([]domain.Mission, error) {
		return s.missions.ListByStore(ctx, storeID, req)
	}, func(m domain.Mission) int64 { return m.ID })
	if err != nil {
		return pagination.Page[domain.Mission]{}, toAppError(op, err)
	}

	return result, nil
}

func (s *MissionServiceImpl) ListMyChallenges(
	ctx context.Context,
	principal domain.Principal,
	page pagination.Request,
) (pagination.Page[domain.MissionChallenge], error) {
	const op = "internal.service.mission.ListMyChallenges"

	result, err := pagination.Paginate(ctx, page, func(ctx context.Context, req pagination.Request) ([]domain.MissionChallenge, error) {
		return s.challenges.ListByUser(ctx, principal.UserID, req)
	}, func(c domain.MissionChallenge) int64 { return c.ID })
	if err != nil {
		return pagination.Page[domain.MissionChallenge]{}, toAppError(op, err)
	}

	return result, nil
}

// StartChallenge opens an ONGOING challenge for the caller. A concurrent start
// that slips past the guard is rejected by the partial unique index and
// surfaces as the same DuplicateMissionChallenge error.
func (s *MissionServiceImpl) StartChallenge(ctx context.Context, principal domain.Principal, missionID int64) (*domain.MissionChallenge, error) {
	const op = "internal.service.mission.StartChallenge"
	log := s.log.With(slog.String("op", op), slog.Int64("mission_id", missionID), slog.Int64("user_id", principal.UserID))

	var id int64

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		if err := checkCanStart(ctx, s.missions, s.challenges, tx, principal.UserID, missionID); err != nil {
			return err
		}

		var err error

		id, err = s.challenges.Create(ctx, tx, domain.NewChallenge(principal.UserID, missionID, s.now()))

		return err
	})
	if err != nil {
		return nil, toAppError(op, err)
	}

	challenge, err := s.challenges.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, toAppError(op, err)
	}

	if challenge == nil {
		return nil, toAppError(op, lostChallenge(id))
	}

	log.Info("mission challenge started", slog.Int64("challenge_id", id))

	return challenge, nil
}

// CompleteChallenge locks the challenge row so that concurrent completes
// serialize; the loser sees COMPLETED and gets MissionAlreadyCompleted.
func (s *MissionServiceImpl) CompleteChallenge(ctx context.Context, principal domain.Principal, challengeID int64) (*domain.MissionChallenge, error) {
	const op = "internal.service.mission.CompleteChallenge"
	log := s.log.With(slog.String("op", op), slog.Int64("challenge_id", challengeID), slog.Int64("user_id", principal.UserID))

	var challenge *domain.MissionChallenge

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		challenge, err = lockChallenge(ctx, s.challenges, tx, challengeID)
		if err != nil {
			return err
		}

		if err := challenge.Complete(principal.UserID, s.now()); err != nil {
			return err
		}

		return s.challenges.UpdateStatus(ctx, tx, challenge.ID, challenge.Status, challenge.EndAt)
	})
	if err != nil {
		log.Warn("mission challenge not completed", sl.Err(err))
		return nil, toAppError(op, err)
	}

	log.Info("mission challenge completed")

	return challenge, nil
}
