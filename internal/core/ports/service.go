package ports

import (
	"context"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

// EntityService wraps a Repository with input validation and error
// translation; same contract, stricter preconditions.
type EntityService[T any, PT Entity[T]] interface {
	List(ctx context.Context, page, pageSize int, q ListQuery) (*domain.Page[PT], error)
	GetByID(ctx context.Context, id int64, q ListQuery) (PT, error)
	Add(ctx context.Context, entity PT) error
	Update(ctx context.Context, entity PT) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// UserService adds the account domain operations on top of the generic set.
type UserService interface {
	EntityService[domain.User, *domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Register forces the Client role and persists the account directly.
	Register(ctx context.Context, entity *domain.User) error
	// Authenticate verifies credentials and issues a signed token. Unknown
	// email and wrong password are indistinguishable to the caller: both
	// yield domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (string, error)
}
