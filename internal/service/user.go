package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/repository"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
)

type UserService interface {
	SignUp(ctx context.Context, input domain.NewUser) (*domain.UserWithPreferences, error)
}

type UserServiceImpl struct {
	log   *slog.Logger
	users repository.UserRepository
}

func NewUserService(log *slog.Logger, users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		log:   log,
		users: users,
	}
}

// SignUp creates the user and then links each preference with its own
// statement. A failed preference insert is reported, but the user row stays.
func (s *UserServiceImpl) SignUp(ctx context.Context, input domain.NewUser) (*domain.UserWithPreferences, error) {
	const op = "internal.service.user.SignUp"
	log := s.log.With(slog.String("op", op))

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Email == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.New(apperrors.KindInvalidUserData, "email and name are required", nil)
	}

	taken, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, toAppError(op, err)
	}

	if taken {
		log.Warn("signup with a registered email")
		return nil, apperrors.New(apperrors.KindDuplicateUserEmail, "", map[string]any{"email": input.Email})
	}

	userID, err := s.users.Create(ctx, input)
	if err != nil {
		return nil, toAppError(op, err)
	}

	log = log.With(slog.Int64("user_id", userID))

	for _, categoryID := range input.Preferences {
		if err := s.users.AddPreference(ctx, userID, categoryID); err != nil {
			log.Error("failed to add preference", slog.Int64("food_category_id", categoryID), sl.Err(err))

			return nil, apperrors.Wrap(apperrors.KindDatabase, err, "user was created but preferences could not be saved",
				map[string]any{"userId": userID, "categoryId": categoryID})
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, toAppError(op, err)
	}

	preferences, err := s.users.ListPreferences(ctx, userID)
	if err != nil {
		return nil, toAppError(op, err)
	}

	log.Info("user signed up", slog.Int("preferences", len(preferences)))

	return &domain.UserWithPreferences{User: *user, Preferences: preferences}, nil
}
