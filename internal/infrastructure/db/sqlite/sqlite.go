package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to open the SQLite database.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens the SQLite database, verifies connectivity with a ping, and
// wraps the connection in a Bun handle. A default timeout is applied when
// none is provided.
func Connect(ctx context.Context, cfg Config) (*bun.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	sqldb, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqldb.PingContext(pingCtx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
