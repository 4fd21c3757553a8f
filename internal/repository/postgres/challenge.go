package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/jmoiron/sqlx"
)

const ongoingChallengeIndex = "uq_mission_challenges_ongoing"

type ChallengeRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewChallengeRepository(db *sqlx.DB, log *slog.Logger) *ChallengeRepository {
	return &ChallengeRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (r *ChallengeRepository) selectChallenges() sq.SelectBuilder {
	return r.sq.Select(
		"mc.id", "mc.status", "mc.mission_id", "mc.user_id", "mc.start_at", "mc.end_at", "mc.created_at",
		"m.title AS mission_title", "m.reward AS mission_reward", "m.store_id",
		"s.name AS store_name", "u.name AS user_name",
	).
		From("mission_challenges mc").
		Join("missions m ON m.id = mc.mission_id").
		Join("stores s ON s.id = m.store_id").
		Join("users u ON u.id = mc.user_id")
}

func (r *ChallengeRepository) HasOngoing(ctx context.Context, ext sqlx.ExtContext, userID, missionID int64) (bool, error) {
	const op = "internal.repository.postgres.challenge.HasOngoing"

	return exists(ctx, ext, op, r.sq.Select("1").
		From("mission_challenges").
		Where(sq.Eq{"user_id": userID, "mission_id": missionID, "status": domain.ChallengeOngoing}))
}

func (r *ChallengeRepository) Create(ctx context.Context, tx *sqlx.Tx, challenge *domain.MissionChallenge) (int64, error) {
	const op = "internal.repository.postgres.challenge.Create"

	query, args, err := r.sq.Insert("mission_challenges").
		Columns("status", "mission_id", "user_id", "start_at", "end_at").
		Values(challenge.Status, challenge.MissionID, challenge.UserID, challenge.StartAt, challenge.EndAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			if pqConstraint(err) == ongoingChallengeIndex {
				return 0, apperrors.Wrap(apperrors.KindDuplicateMissionChallenge, err, "",
					map[string]any{"missionId": challenge.MissionID})
			}
		case codeForeignKeyViolation:
			if pqConstraint(err) == "mission_challenges_mission_id_fkey" {
				return 0, apperrors.Wrap(apperrors.KindMissionNotFound, err, "",
					map[string]any{"missionId": challenge.MissionID})
			}

			return 0, apperrors.Wrap(apperrors.KindUserNotFound, err, "",
				map[string]any{"userId": challenge.UserID})
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return id, nil
}

func (r *ChallengeRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, challengeID int64) (*domain.MissionChallenge, error) {
	const op = "internal.repository.postgres.challenge.GetByID"

	return r.get(ctx, ext, op, r.selectChallenges().Where(sq.Eq{"mc.id": challengeID}))
}

func (r *ChallengeRepository) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, challengeID int64) (*domain.MissionChallenge, error) {
	const op = "internal.repository.postgres.challenge.GetByIDWithLock"

	return r.get(ctx, tx, op, r.selectChallenges().Where(sq.Eq{"mc.id": challengeID}).Suffix("FOR UPDATE OF mc"))
}

func (r *ChallengeRepository) get(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder) (*domain.MissionChallenge, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var challenge domain.MissionChallenge
	if err := sqlx.GetContext(ctx, ext, &challenge, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &challenge, nil
}

func (r *ChallengeRepository) UpdateStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	challengeID int64,
	status domain.ChallengeStatus,
	endAt *time.Time,
) error {
	const op = "internal.repository.postgres.challenge.UpdateStatus"

	query, args, err := r.sq.Update("mission_challenges").
		Set("status", status).
		Set("end_at", endAt).
		Where(sq.Eq{"id": challengeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}

	if affected == 0 {
		return apperrors.New(apperrors.KindMissionChallengeNotFound, "", map[string]any{"challengeId": challengeID})
	}

	return nil
}

func (r *ChallengeRepository) ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]domain.MissionChallenge, error) {
	const op = "internal.repository.postgres.challenge.ListByUser"

	query, args, err := page.Apply(r.selectChallenges().Where(sq.Eq{"mc.user_id": userID}), "mc.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	challenges := []domain.MissionChallenge{}
	if err := r.db.SelectContext(ctx, &challenges, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return challenges, nil
}
