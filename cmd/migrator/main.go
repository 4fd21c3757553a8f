package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/gumwoo/umc-pr/internal/config"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
	"github.com/gumwoo/umc-pr/pkg/logger/slogpretty"
)

const (
	defaultMigrationsPath  = "migrations"
	defaultMigrationsTable = "schema_migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := slogpretty.SetupLogger(cfg.Env, os.Stdout)

	m, err := migrate.New(
		"file://"+envOr("MIGRATIONS_PATH", defaultMigrationsPath),
		fmt.Sprintf("%s&x-migrations-table=%s", cfg.Postgres.DSN(), envOr("MIGRATIONS_TABLE", defaultMigrationsTable)),
	)
	if err != nil {
		return fmt.Errorf("can't create migrator: %w", err)
	}
	defer m.Close()

	var cmd string
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "down":
		err = down(log, m)
	case "version":
		err = version(log, m)
	case "up", "":
		err = up(log, m)
	default:
		err = fmt.Errorf("unknown command %q, want up, down or version", cmd)
	}

	if err != nil {
		log.Error("migration failed", slog.String("command", cmd), sl.Err(err))
	}

	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func up(log *slog.Logger, m *migrate.Migrate) error {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no new migrations to apply")
			return nil
		}

		return fmt.Errorf("can't apply migrations: %w", err)
	}

	log.Info("migrations applied successfully")

	return nil
}

func down(log *slog.Logger, m *migrate.Migrate) error {
	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}

		return fmt.Errorf("can't roll back migrations: %w", err)
	}

	log.Info("migrations rolled back successfully")

	return nil
}

func version(log *slog.Logger, m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("no migrations applied yet")
		return nil
	}

	if err != nil {
		return fmt.Errorf("can't read schema version: %w", err)
	}

	log.Info("schema version", slog.Uint64("version", uint64(v)), slog.Bool("dirty", dirty))

	return nil
}
