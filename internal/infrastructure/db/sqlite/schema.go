package sqlite

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/accounts-api/internal/core/domain"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL,
	role     TEXT NOT NULL
)`

const createEmailIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)`

// seedPassword is the well-known password for the two bootstrap accounts.
const seedPassword = "pucminas"

// Migrate creates the schema if it does not exist and inserts the two
// bootstrap accounts (one administrator, one client) into an empty table.
func Migrate(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createEmailIndex); err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return seed(ctx, db)
}

func seed(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*domain.User)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := []*domain.User{
		{ID: 1, Name: "Administrator", Email: "admin@example.com", Password: string(hash), Role: domain.RoleAdministrator},
		{ID: 2, Name: "Client", Email: "client@example.com", Password: string(hash), Role: domain.RoleClient},
	}
	if _, err := db.NewInsert().Model(&users).Exec(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}
