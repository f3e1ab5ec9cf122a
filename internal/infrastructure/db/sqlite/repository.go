package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

// Repository is the generic Bun-backed implementation of ports.Repository.
// Per-entity repositories embed it and add their own lookups.
type Repository[T any, PT ports.Entity[T]] struct {
	db *bun.DB
}

func NewRepository[T any, PT ports.Entity[T]](db *bun.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

func (r *Repository[T, PT]) List(ctx context.Context, page, pageSize int, q ports.ListQuery) (*domain.Page[PT], error) {
	items := make([]PT, 0, pageSize)
	sel := applyQuery(r.db.NewSelect().Model(&items), q).
		Offset((page - 1) * pageSize).
		Limit(pageSize)

	total, err := sel.ScanAndCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}

	return &domain.Page[PT]{
		Items:       items,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  total,
	}, nil
}

func (r *Repository[T, PT]) GetByID(ctx context.Context, id int64, q ports.ListQuery) (PT, error) {
	var zero PT
	if id <= 0 {
		return zero, domain.ErrInvalidID
	}

	entity := PT(new(T))
	err := applyQuery(r.db.NewSelect().Model(entity), q).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("get entity %d: %w", id, err)
	}
	return entity, nil
}

func (r *Repository[T, PT]) Add(ctx context.Context, entity PT) error {
	res, err := r.db.NewInsert().Model(entity).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert entity: %w", err)
	}
	if entity.GetID() == 0 {
		if id, err := res.LastInsertId(); err == nil {
			entity.SetID(id)
		}
	}
	return nil
}

func (r *Repository[T, PT]) Update(ctx context.Context, entity PT) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update entity %d: %w", entity.GetID(), err)
	}
	return nil
}

// Delete fetches the row first so a missing id surfaces as ErrNotFound
// rather than a silent no-op delete.
func (r *Repository[T, PT]) Delete(ctx context.Context, id int64) error {
	entity, err := r.GetByID(ctx, id, ports.ListQuery{})
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(entity).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("delete entity %d: %w", id, err)
	}
	return nil
}

func (r *Repository[T, PT]) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var model PT
	exists, err := r.db.NewSelect().Model(model).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check entity %d exists: %w", id, err)
	}
	return exists, nil
}

func applyQuery(sel *bun.SelectQuery, q ports.ListQuery) *bun.SelectQuery {
	if q.Where != "" {
		sel = sel.Where(q.Where, q.Args...)
	}
	for _, rel := range q.Relations {
		sel = sel.Relation(rel)
	}
	return sel
}

// isUniqueViolation sniffs SQLite's constraint error text; the driver does
// not expose a typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
