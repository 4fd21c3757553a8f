package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "internal.repository.postgres.user.ExistsByEmail"

	return exists(ctx, ur.db, op, ur.sq.Select("1").From("users").Where(sq.Eq{"email": email}))
}

func (ur *UserRepository) Create(ctx context.Context, user domain.NewUser) (int64, error) {
	const op = "internal.repository.postgres.user.Create"

	query, args, err := ur.sq.Insert("users").
		Columns("email", "name", "gender", "birth", "address", "detail_address", "phone_number").
		Values(user.Email, user.Name, user.Gender, user.Birth, user.Address, user.DetailAddress, user.PhoneNumber).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var id int64
	if err := ur.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if pqCode(err) == codeUniqueViolation {
			return 0, apperrors.Wrap(apperrors.KindDuplicateUserEmail, err, "",
				map[string]any{"email": user.Email})
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	ur.log.Debug("user row inserted", slog.String("op", op), slog.Int64("user_id", id))

	return id, nil
}

func (ur *UserRepository) AddPreference(ctx context.Context, userID, foodCategoryID int64) error {
	const op = "internal.repository.postgres.user.AddPreference"

	query, args, err := ur.sq.Insert("user_favor_categories").
		Columns("user_id", "food_category_id").
		Values(userID, foodCategoryID).
		Suffix("ON CONFLICT (user_id, food_category_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := ur.db.ExecContext(ctx, query, args...); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			if pqConstraint(err) == "user_favor_categories_user_id_fkey" {
				return apperrors.Wrap(apperrors.KindUserNotFound, err, "", map[string]any{"userId": userID})
			}

			return apperrors.Wrap(apperrors.KindResourceNotFound, err, "food category not found",
				map[string]any{"categoryId": foodCategoryID})
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (ur *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	const op = "internal.repository.postgres.user.GetByID"

	query, args, err := ur.sq.Select(
		"id", "email", "name", "gender", "birth", "address", "detail_address", "phone_number", "created_at",
	).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindUserNotFound, "", map[string]any{"userId": userID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}

func (ur *UserRepository) ListPreferences(ctx context.Context, userID int64) ([]domain.Preference, error) {
	const op = "internal.repository.postgres.user.ListPreferences"

	query, args, err := ur.sq.Select("ufc.food_category_id", "fc.name").
		From("user_favor_categories ufc").
		Join("food_categories fc ON fc.id = ufc.food_category_id").
		Where(sq.Eq{"ufc.user_id": userID}).
		OrderBy("ufc.food_category_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	preferences := []domain.Preference{}
	if err := ur.db.SelectContext(ctx, &preferences, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return preferences, nil
}
