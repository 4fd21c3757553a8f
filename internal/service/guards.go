package service

import (
	"context"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/repository"
	"github.com/jmoiron/sqlx"
)

// The require* helpers turn an absent parent into its domain error. They only
// read and may be called any number of times.

func requireRegion(ctx context.Context, repo repository.RegionRepository, ext sqlx.ExtContext, regionID int64) error {
	ok, err := repo.Exists(ctx, ext, regionID)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.New(apperrors.KindResourceNotFound, "region not found", map[string]any{"regionId": regionID})
	}

	return nil
}

func requireStore(ctx context.Context, repo repository.StoreRepository, ext sqlx.ExtContext, storeID int64) error {
	ok, err := repo.Exists(ctx, ext, storeID)
	if err != nil {
		return err
	}

	if !ok {
		return apperrors.New(apperrors.KindStoreNotFound, "", map[string]any{"storeId": storeID})
	}

	return nil
}

// checkCanStart reads both start preconditions and hands them to the state machine.
func checkCanStart(
	ctx context.Context,
	missions repository.MissionRepository,
	challenges repository.ChallengeRepository,
	ext sqlx.ExtContext,
	userID, missionID int64,
) error {
	missionExists, err := missions.Exists(ctx, ext, missionID)
	if err != nil {
		return err
	}

	if !missionExists {
		return domain.CanStart(missionID, false, false)
	}

	hasOngoing, err := challenges.HasOngoing(ctx, ext, userID, missionID)
	if err != nil {
		return err
	}

	return domain.CanStart(missionID, true, hasOngoing)
}

// lockChallenge reads the challenge for update, or fails with MissionChallengeNotFound.
func lockChallenge(ctx context.Context, repo repository.ChallengeRepository, tx *sqlx.Tx, challengeID int64) (*domain.MissionChallenge, error) {
	challenge, err := repo.GetByIDWithLock(ctx, tx, challengeID)
	if err != nil {
		return nil, err
	}

	if challenge == nil {
		return nil, apperrors.New(apperrors.KindMissionChallengeNotFound, "", map[string]any{"challengeId": challengeID})
	}

	return challenge, nil
}

// lostChallenge reports a challenge that was inserted but cannot be read back.
func lostChallenge(challengeID int64) error {
	return apperrors.New(apperrors.KindMissionChallengeNotFound, "", map[string]any{"challengeId": challengeID})
}
