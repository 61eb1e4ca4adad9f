package database

import (
	"context"
	"database/sql"
	"fmt"

	"studynotes-be/pkg/database/migrations"

	"github.com/pressly/goose/v3"
)

const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandReset  = "reset"
)

// gooseRun is a seam for tests.
var gooseRun = func(ctx context.Context, command string, db *sql.DB, dir string) error {
	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, dir)
	case CommandDown:
		return goose.DownContext(ctx, db, dir)
	case CommandStatus:
		return goose.StatusContext(ctx, db, dir)
	case CommandReset:
		return goose.ResetContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}

// Migrate runs the embedded goose migrations against db.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseRun(ctx, command, db, ".")
}
