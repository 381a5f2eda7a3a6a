package di

import (
	"database/sql"
	"fmt"

	"github.com/goliatone/go-blog/feeds"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens a bun handle for the configured driver. The "memory"
// driver returns nil so callers fall back to in-memory repositories.
func OpenDatabase(cfg runtimeconfig.DatabaseConfig) (*bun.DB, error) {
	switch cfg.Driver {
	case "memory":
		return nil, nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		return wireDB(bun.NewDB(sqlDB, sqlitedialect.New())), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return wireDB(bun.NewDB(sqlDB, pgdialect.New())), nil
	default:
		return nil, runtimeconfig.ErrDatabaseDriverUnknown
	}
}

// wireDB registers the join models bun needs before m2m relations resolve.
func wireDB(db *bun.DB) *bun.DB {
	db.RegisterModel((*feeds.FeedTag)(nil))
	return db
}

func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		c.bunDB.RegisterModel((*feeds.FeedTag)(nil))
		return nil
	}

	db, err := OpenDatabase(c.Config.Database)
	if err != nil {
		return err
	}
	c.bunDB = db
	return nil
}
