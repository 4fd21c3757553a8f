package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceImpl_SignUp(t *testing.T) {
	ctx := context.Background()

	input := domain.NewUser{
		Email:       "Kim@Example.com ",
		Name:        "Kim",
		Gender:      "MALE",
		Birth:       time.Date(1995, 1, 20, 0, 0, 0, 0, time.UTC),
		PhoneNumber: "010-1234-5678",
		Preferences: []int64{1, 3},
	}
	normalized := input
	normalized.Email = "kim@example.com"

	testCases := []struct {
		name         string
		input        domain.NewUser
		setupMocks   func(users *UserRepositoryMock)
		expectedKind apperrors.Kind
	}{
		{
			name:  "Success",
			input: input,
			setupMocks: func(users *UserRepositoryMock) {
				users.On("ExistsByEmail", ctx, "kim@example.com").Return(false, nil).Once()
				users.On("Create", ctx, normalized).Return(int64(7), nil).Once()
				users.On("AddPreference", ctx, int64(7), int64(1)).Return(nil).Once()
				users.On("AddPreference", ctx, int64(7), int64(3)).Return(nil).Once()
				users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "kim@example.com", Name: "Kim"}, nil).Once()
				users.On("ListPreferences", ctx, int64(7)).Return([]domain.Preference{
					{FoodCategoryID: 1, Name: "Korean"},
					{FoodCategoryID: 3, Name: "Japanese"},
				}, nil).Once()
			},
		},
		{
			name:  "Failure: email already registered",
			input: input,
			setupMocks: func(users *UserRepositoryMock) {
				users.On("ExistsByEmail", ctx, "kim@example.com").Return(true, nil).Once()
			},
			expectedKind: apperrors.KindDuplicateUserEmail,
		},
		{
			name:  "Failure: email taken between check and insert",
			input: input,
			setupMocks: func(users *UserRepositoryMock) {
				users.On("ExistsByEmail", ctx, "kim@example.com").Return(false, nil).Once()
				users.On("Create", ctx, normalized).
					Return(int64(0), apperrors.New(apperrors.KindDuplicateUserEmail, "", nil)).Once()
			},
			expectedKind: apperrors.KindDuplicateUserEmail,
		},
		{
			name:  "Failure: preference insert fails after user is created",
			input: input,
			setupMocks: func(users *UserRepositoryMock) {
				users.On("ExistsByEmail", ctx, "kim@example.com").Return(false, nil).Once()
				users.On("Create", ctx, normalized).Return(int64(7), nil).Once()
				users.On("AddPreference", ctx, int64(7), int64(1)).Return(nil).Once()
				users.On("AddPreference", ctx, int64(7), int64(3)).
					Return(apperrors.New(apperrors.KindResourceNotFound, "food category not found", nil)).Once()
			},
			expectedKind: apperrors.KindDatabase,
		},
		{
			name:         "Failure: missing email",
			input:        domain.NewUser{Name: "Kim"},
			setupMocks:   func(*UserRepositoryMock) {},
			expectedKind: apperrors.KindInvalidUserData,
		},
		{
			name:  "Failure: lookup error",
			input: input,
			setupMocks: func(users *UserRepositoryMock) {
				users.On("ExistsByEmail", ctx, mock.Anything).Return(false, errors.New("db down")).Once()
			},
			expectedKind: apperrors.KindDatabase,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usersMock := new(UserRepositoryMock)
			tc.setupMocks(usersMock)

			service := NewUserService(newTestLogger(), usersMock)
			user, err := service.SignUp(ctx, tc.input)

			if tc.expectedKind != apperrors.KindUnknown {
				require.Error(t, err)
				assert.Nil(t, user)
				assert.Equal(t, tc.expectedKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), user.ID)
				assert.Len(t, user.Preferences, 2)
			}

			usersMock.AssertExpectations(t)
		})
	}
}
