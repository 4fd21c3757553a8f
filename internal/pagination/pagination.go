// Package pagination implements descending-id keyset pages.
//
// A page is read with one query that asks for one row more than the page
// size; the extra row only tells whether another page exists and is dropped.
// The next cursor is the id of the last row kept, and the following page asks
// for ids strictly below it, so rows inserted after the first page was read
// never shift later pages.
package pagination

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/gumwoo/umc-pr/internal/apperrors"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

type Request struct {
	Cursor *int64
	Limit  int
}

type Page[T any] struct {
	Items      []T
	NextCursor *int64
}

// Fetcher returns up to req.Limit rows of one parent scope with id < *req.Cursor,
// newest first. Repositories implement it with Request.Apply.
type Fetcher[T any] func(ctx context.Context, req Request) ([]T, error)

func (r Request) Validate() error {
	if r.Limit <= 0 {
		return apperrors.New(apperrors.KindInvalidRequest, "limit must be a positive integer",
			map[string]any{"limit": r.Limit})
	}

	if r.Limit > MaxLimit {
		return apperrors.New(apperrors.KindInvalidRequest, fmt.Sprintf("limit must not exceed %d", MaxLimit),
			map[string]any{"limit": r.Limit, "maxLimit": MaxLimit})
	}

	return nil
}

// Apply adds the cursor filter, the descending order and the limit to b.
func (r Request) Apply(b sq.SelectBuilder, idColumn string) sq.SelectBuilder {
	if r.Cursor != nil {
		b = b.Where(sq.Lt{idColumn: *r.Cursor})
	}

	return b.OrderBy(idColumn + " DESC").Limit(uint64(r.Limit))
}

// Paginate reads one page through fetch. idOf extracts the id the rows are ordered by.
func Paginate[T any](ctx context.Context, req Request, fetch Fetcher[T], idOf func(T) int64) (Page[T], error) {
	if err := req.Validate(); err != nil {
		return Page[T]{}, err
	}

	rows, err := fetch(ctx, Request{Cursor: req.Cursor, Limit: req.Limit + 1})
	if err != nil {
		return Page[T]{}, err
	}

	if len(rows) <= req.Limit {
		if rows == nil {
			rows = []T{}
		}

		return Page[T]{Items: rows}, nil
	}

	rows = rows[:req.Limit]
	next := idOf(rows[len(rows)-1])

	return Page[T]{Items: rows, NextCursor: &next}, nil
}

// ParseQuery reads the cursor and limit query values. An empty limit falls back
// to defaultLimit, an empty cursor means the first page.
func ParseQuery(cursor, limit string, defaultLimit int) (Request, error) {
	req := Request{Limit: defaultLimit}

	if cursor != "" {
		c, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return Request{}, apperrors.Wrap(apperrors.KindInvalidRequest, err, "cursor must be an integer",
				map[string]any{"cursor": cursor})
		}

		req.Cursor = &c
	}

	if limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil {
			return Request{}, apperrors.Wrap(apperrors.KindInvalidRequest, err, "limit must be an integer",
				map[string]any{"limit": limit})
		}

		req.Limit = l
	}

	if err := req.Validate(); err != nil {
		return Request{}, err
	}

	return req, nil
}
