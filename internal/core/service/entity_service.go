package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

// EntityService wraps a repository with the business-rule checks shared by
// every entity: id and pagination validation, nil guards, and existence
// checks before mutation. Repository failures are wrapped with context but
// never swallowed, so sentinel errors survive errors.Is further up.
type EntityService[T any, PT ports.Entity[T]] struct {
	repo   ports.Repository[T, PT]
	logger zerolog.Logger
}

func NewEntityService[T any, PT ports.Entity[T]](repo ports.Repository[T, PT], logger zerolog.Logger) *EntityService[T, PT] {
	return &EntityService[T, PT]{repo: repo, logger: logger}
}

func (s *EntityService[T, PT]) List(ctx context.Context, page, pageSize int, q ports.ListQuery) (*domain.Page[PT], error) {
	if page < 1 || pageSize < 1 {
		return nil, domain.ErrInvalidPagination
	}
	result, err := s.repo.List(ctx, page, pageSize, q)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	return result, nil
}

func (s *EntityService[T, PT]) GetByID(ctx context.Context, id int64, q ports.ListQuery) (PT, error) {
	var zero PT
	if id <= 0 {
		return zero, domain.ErrInvalidID
	}
	entity, err := s.repo.GetByID(ctx, id, q)
	if err != nil {
		return zero, fmt.Errorf("get entity %d: %w", id, err)
	}
	return entity, nil
}

func (s *EntityService[T, PT]) Add(ctx context.Context, entity PT) error {
	if entity == nil {
		return domain.ErrNilEntity
	}
	if err := s.repo.Add(ctx, entity); err != nil {
		return fmt.Errorf("add entity: %w", err)
	}
	return nil
}

func (s *EntityService[T, PT]) Update(ctx context.Context, entity PT) error {
	if entity == nil {
		return domain.ErrNilEntity
	}
	exists, err := s.repo.Exists(ctx, entity.GetID())
	if err != nil {
		return fmt.Errorf("update entity %d: %w", entity.GetID(), err)
	}
	if !exists {
		return fmt.Errorf("update entity %d: %w", entity.GetID(), domain.ErrNotFound)
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return fmt.Errorf("update entity %d: %w", entity.GetID(), err)
	}
	return nil
}

func (s *EntityService[T, PT]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("delete entity %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("delete entity %d: %w", id, domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entity %d: %w", id, err)
	}
	return nil
}

func (s *EntityService[T, PT]) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, domain.ErrInvalidID
	}
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check entity %d exists: %w", id, err)
	}
	return exists, nil
}
