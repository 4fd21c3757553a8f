package domain

import (
	"testing"
	"time"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanStart(t *testing.T) {
	testCases := []struct {
		name          string
		missionExists bool
		hasOngoing    bool
		expectedErr   error
	}{
		{name: "Success", missionExists: true},
		{name: "Failure: mission not found", hasOngoing: true, expectedErr: apperrors.ErrMissionNotFound},
		{name: "Failure: ongoing challenge exists", missionExists: true, hasOngoing: true, expectedErr: apperrors.ErrDuplicateMissionChallenge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanStart(10, tc.missionExists, tc.hasOngoing)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestNewChallenge(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	c := NewChallenge(1, 10, now)

	assert.Equal(t, ChallengeOngoing, c.Status)
	assert.Equal(t, now, c.StartAt)
	assert.Nil(t, c.EndAt)
	assert.True(t, c.OwnedBy(1))
	assert.False(t, c.OwnedBy(2))
}

func TestMissionChallenge_Complete(t *testing.T) {
	now := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	testCases := []struct {
		name           string
		challenge      MissionChallenge
		actingUser     int64
		expectedErr    error
		expectedStatus ChallengeStatus
		expectedEndAt  *time.Time
	}{
		{
			name:           "Success: owner completes ongoing challenge",
			challenge:      MissionChallenge{ID: 5, UserID: 1, Status: ChallengeOngoing},
			actingUser:     1,
			expectedStatus: ChallengeCompleted,
			expectedEndAt:  &now,
		},
		{
			name:           "Failure: not the owner",
			challenge:      MissionChallenge{ID: 5, UserID: 1, Status: ChallengeOngoing},
			actingUser:     2,
			expectedErr:    apperrors.ErrPermissionDenied,
			expectedStatus: ChallengeOngoing,
		},
		{
			name:           "Failure: already completed",
			challenge:      MissionChallenge{ID: 5, UserID: 1, Status: ChallengeCompleted, EndAt: &earlier},
			actingUser:     1,
			expectedErr:    apperrors.ErrMissionAlreadyCompleted,
			expectedStatus: ChallengeCompleted,
			expectedEndAt:  &earlier,
		},
		{
			name:           "Failure: failed challenge is terminal",
			challenge:      MissionChallenge{ID: 5, UserID: 1, Status: ChallengeFailed, EndAt: &earlier},
			actingUser:     1,
			expectedErr:    apperrors.ErrMissionAlreadyCompleted,
			expectedStatus: ChallengeFailed,
			expectedEndAt:  &earlier,
		},
		{
			name:           "Failure: ownership is checked before status",
			challenge:      MissionChallenge{ID: 5, UserID: 1, Status: ChallengeCompleted, EndAt: &earlier},
			actingUser:     3,
			expectedErr:    apperrors.ErrPermissionDenied,
			expectedStatus: ChallengeCompleted,
			expectedEndAt:  &earlier,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.challenge

			err := c.Complete(tc.actingUser, now)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expectedStatus, c.Status)
			assert.Equal(t, tc.expectedEndAt, c.EndAt)
		})
	}
}

func TestMissionChallenge_CompleteFailedCarriesStatus(t *testing.T) {
	c := MissionChallenge{ID: 8, UserID: 1, Status: ChallengeFailed}

	err := c.Complete(1, time.Now())

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FAILED", appErr.Data["status"])
	assert.Equal(t, int64(8), appErr.Data["challengeId"])
}

func TestNewMission_WithDefaults(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("fills missing reward and deadline", func(t *testing.T) {
		m := NewMission{StoreID: 1, Title: "t"}.WithDefaults(now)

		require.NotNil(t, m.Reward)
		require.NotNil(t, m.Deadline)
		assert.Equal(t, DefaultMissionReward, *m.Reward)
		assert.Equal(t, now.Add(7*24*time.Hour), *m.Deadline)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		reward := 500
		deadline := now.Add(time.Hour)

		m := NewMission{Reward: &reward, Deadline: &deadline}.WithDefaults(now)

		assert.Equal(t, 500, *m.Reward)
		assert.Equal(t, deadline, *m.Deadline)
	})
}
