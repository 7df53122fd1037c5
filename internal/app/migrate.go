package app

import (
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"

	"github.com/guttosm/cryptorec/db/migrations"
	"github.com/guttosm/cryptorec/internal/logger"
)

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.L().Info().Str("component", "goose").Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.L().Fatal().Str("component", "goose").Msgf(format, v...)
}

// Migrate applies the embedded SQL migrations to db.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// migrator is an indirection used by InitializeApp; overridden in tests.
var migrator = Migrate
