package ports

import (
	"context"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

// Model is the minimal surface every persisted entity exposes: an integer
// identity assigned once by the store.
type Model interface {
	GetID() int64
	SetID(int64)
}

// Entity ties a model's pointer type to its struct type so generic
// repositories can allocate fresh records.
type Entity[T any] interface {
	*T
	Model
}

// ListQuery carries the optional filter predicate and related-data eager
// loads applied before counting and slicing a page.
type ListQuery struct {
	Where     string   // SQL predicate with ? placeholders; empty = no filter
	Args      []any    // placeholder arguments for Where
	Relations []string // relation names to eager-load
}

// Repository defines generic persistence operations for an entity type.
type Repository[T any, PT Entity[T]] interface {
	// List returns one 1-based page of matching rows plus the total match count.
	List(ctx context.Context, page, pageSize int, q ListQuery) (*domain.Page[PT], error)
	// GetByID returns the row with the given id, domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64, q ListQuery) (PT, error)
	// Add inserts the entity and assigns the generated identity back onto it.
	Add(ctx context.Context, entity PT) error
	// Update persists the entity as given, keyed by its identity.
	Update(ctx context.Context, entity PT) error
	// Delete fetches the row (propagating domain.ErrNotFound) and removes it.
	Delete(ctx context.Context, id int64) error
	// Exists reports whether a row with the given id exists; false for id <= 0.
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserRepository extends the generic contract with the account-specific lookup.
type UserRepository interface {
	Repository[domain.User, *domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
