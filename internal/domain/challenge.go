package domain

import (
	"time"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

type ChallengeStatus string

const (
	ChallengeOngoing   ChallengeStatus = "ONGOING"
	ChallengeCompleted ChallengeStatus = "COMPLETED"
	ChallengeFailed    ChallengeStatus = "FAILED"
)

func (s ChallengeStatus) Terminal() bool {
	return s == ChallengeCompleted || s == ChallengeFailed
}

// MissionChallenge is one user's attempt at one mission. The mission, store and
// user fields are denormalized by the read queries.
type MissionChallenge struct {
	ID        int64           `db:"id"`
	Status    ChallengeStatus `db:"status"`
	MissionID int64           `db:"mission_id"`
	UserID    int64           `db:"user_id"`
	StartAt   time.Time       `db:"start_at"`
	EndAt     *time.Time      `db:"end_at"`
	CreatedAt time.Time       `db:"created_at"`

	MissionTitle  string `db:"mission_title"`
	MissionReward int    `db:"mission_reward"`
	StoreID       int64  `db:"store_id"`
	StoreName     string `db:"store_name"`
	UserName      string `db:"user_name"`
}

// CanStart checks the preconditions for starting a challenge on missionID.
func CanStart(missionID int64, missionExists, hasOngoing bool) error {
	if !missionExists {
		return apperrors.New(apperrors.KindMissionNotFound, "", map[string]any{"missionId": missionID})
	}

	if hasOngoing {
		return apperrors.New(apperrors.KindDuplicateMissionChallenge, "", map[string]any{"missionId": missionID})
	}

	return nil
}

// NewChallenge returns a fresh ONGOING challenge.
func NewChallenge(userID, missionID int64, now time.Time) *MissionChallenge {
	return &MissionChallenge{
		Status:    ChallengeOngoing,
		MissionID: missionID,
		UserID:    userID,
		StartAt:   now,
	}
}

func (c *MissionChallenge) OwnedBy(userID int64) bool {
	return c.UserID == userID
}

// Complete moves an ONGOING challenge to COMPLETED. The challenge is left
// untouched when an error is returned.
func (c *MissionChallenge) Complete(actingUserID int64, now time.Time) error {
	if !c.OwnedBy(actingUserID) {
		return apperrors.New(apperrors.KindPermissionDenied, "only the challenger can complete a mission challenge",
			map[string]any{"challengeId": c.ID})
	}

	if c.Status.Terminal() {
		return apperrors.New(apperrors.KindMissionAlreadyCompleted, "",
			map[string]any{"challengeId": c.ID, "status": string(c.Status)})
	}

	c.Status = ChallengeCompleted
	c.EndAt = &now

	return nil
}
