package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/jmoiron/sqlx"
)

type RegionRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRegionRepository(db *sqlx.DB, log *slog.Logger) *RegionRepository {
	return &RegionRepository{
		db:  db,
		log: log,
		sq:  builder(),
	}
}

func (r *RegionRepository) Exists(ctx context.Context, ext sqlx.ExtContext, regionID int64) (bool, error) {
	const op = "internal.repository.postgres.region.Exists"

	return exists(ctx, ext, op, r.sq.Select("1").From("regions").Where(sq.Eq{"id": regionID}))
}

func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	const op = "internal.repository.postgres.region.List"

	query, args, err := r.sq.Select("id", "name").
		From("regions").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	regions := []domain.Region{}
	if err := r.db.SelectContext(ctx, &regions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return regions, nil
}

// exists runs SELECT EXISTS(<sub>).
func exists(ctx context.Context, ext sqlx.ExtContext, op string, sub sq.SelectBuilder) (bool, error) {
	query, args, err := sub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var found bool
	if err := sqlx.GetContext(ctx, ext, &found, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return found, nil
}
