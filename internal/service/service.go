// Package service holds the use cases: it runs the existence guards, drives the
// mission challenge state machine and pages lists before calling repositories.
//
// Errors leaving this package are always *apperrors.Error. Domain errors from
// guards and repositories pass through unchanged; anything else is wrapped as
// a Database error with the failing operation in its context.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gumwoo/umc-pr/internal/apperrors"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DB runs guard reads outside of a transaction and opens transactions.
type DB interface {
	Transactor
	sqlx.ExtContext
}

type BaseService struct {
	db  DB
	log *slog.Logger
}

func NewBaseService(db DB, log *slog.Logger) BaseService {
	return BaseService{
		db:  db,
		log: log,
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

// toAppError keeps domain errors and wraps everything else as a Database error.
func toAppError(op string, err error) error {
	if err == nil {
		return nil
	}

	if apperrors.KindOf(err) != apperrors.KindUnknown {
		return err
	}

	return apperrors.Wrap(apperrors.KindDatabase, err, "", map[string]any{"op": op})
}

func invalid(reason string, data map[string]any) error {
	return apperrors.New(apperrors.KindInvalidRequest, reason, data)
}
