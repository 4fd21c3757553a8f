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
	"github.com/gumwoo/umc-pr/internal/pagination"
	"github.com/jmoiron/sqlx"
)

type MissionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewMissionRepository(db *sqlx.DB, log *slog.Logger) *MissionRepository {
	return &MissionRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (r *MissionRepository) selectMissions() sq.SelectBuilder {
	return r.sq.Select(
		"m.id", "m.title", "m.content", "m.reward", "m.deadline", "m.store_id",
		"s.name AS store_name", "m.created_at",
	).
		From("missions m").
		Join("stores s ON s.id = m.store_id")
}

func (r *MissionRepository) Exists(ctx context.Context, ext sqlx.ExtContext, missionID int64) (bool, error) {
	const op = "internal.repository.postgres.mission.Exists"

	return exists(ctx, ext, op, r.sq.Select("1").From("missions").Where(sq.Eq{"id": missionID}))
}

func (r *MissionRepository) Create(ctx context.Context, mission domain.NewMission) (int64, error) {
	const op = "internal.repository.postgres.mission.Create"

	if mission.Reward == nil || mission.Deadline == nil {
		return 0, fmt.Errorf("%s: reward and deadline must be set", op)
	}

	query, args, err := r.sq.Insert("missions").
		Columns("title", "content", "reward", "deadline", "store_id").
		Values(mission.Title, mission.Content, *mission.Reward, *mission.Deadline, mission.StoreID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return 0, apperrors.Wrap(apperrors.KindStoreNotFound, err, "",
				map[string]any{"storeId": mission.StoreID})
		}

		return 0, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return id, nil
}

func (r *MissionRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, missionID int64) (*domain.Mission, error) {
	const op = "internal.repository.postgres.mission.GetByID"

	query, args, err := r.selectMissions().Where(sq.Eq{"m.id": missionID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var mission domain.Mission
	if err := sqlx.GetContext(ctx, ext, &mission, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindMissionNotFound, "", map[string]any{"missionId": missionID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &mission, nil
}

func (r *MissionRepository) ListByStore(ctx context.Context, storeID int64, page pagination.Request) ([]domain.Mission, error) {
	const op = "internal.repository.postgres.mission.ListByStore"

	query, args, err := page.Apply(r.selectMissions().Where(sq.Eq{"m.store_id": storeID}), "m.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	missions := []domain.Mission{}
	if err := r.db.SelectContext(ctx, &missions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return missions, nil
}
