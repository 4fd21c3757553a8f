//go:build integration

package postgres

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Seeded by the init migration.
const (
	seoulRegionID   int64 = 1
	koreanCategory  int64 = 1
	chineseCategory int64 = 2
)

var (
	testDB *sqlx.DB
	logger *slog.Logger
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pgContainer, err := postgres.Run(ctx, "postgres:17",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Printf("could not stop postgres container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	testDB, err = sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect to test postgres: %s", err)
	}
	defer testDB.Close()

	_, b, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(b), "../../../migrations")
	sourceURL := "file://" + filepath.ToSlash(migrationsPath)

	migrator, err := migrate.New(sourceURL, connStr)
	if err != nil {
		log.Fatalf("failed to create migrator with url '%s': %s", sourceURL, err)
	}

	if err = migrator.Up(); err != nil {
		log.Fatalf("failed to run migrations: %s", err)
	}

	return m.Run()
}

func truncateTables(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec("TRUNCATE TABLE mission_challenges, missions, reviews, stores, user_favor_categories, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func createUser(t *testing.T, email string) int64 {
	t.Helper()

	id, err := NewUserRepository(testDB, logger).Create(context.Background(), domain.NewUser{
		Email:       email,
		Name:        "user " + email,
		Gender:      "FEMALE",
		Birth:       time.Date(1998, 4, 2, 0, 0, 0, 0, time.UTC),
		PhoneNumber: "010-0000-0000",
	})
	require.NoError(t, err)

	return id
}

func createStore(t *testing.T, name string) int64 {
	t.Helper()

	category := koreanCategory

	id, err := NewStoreRepository(testDB, logger).Create(context.Background(), domain.NewStore{
		Name:       name,
		Address:    "1 Main St",
		CategoryID: &category,
		RegionID:   seoulRegionID,
	})
	require.NoError(t, err)

	return id
}

func createMission(t *testing.T, storeID int64) int64 {
	t.Helper()

	m := domain.NewMission{StoreID: storeID, Title: "spend 10000 won", Content: "order anything"}.WithDefaults(time.Now())

	id, err := NewMissionRepository(testDB, logger).Create(context.Background(), m)
	require.NoError(t, err)

	return id
}

func inTx(t *testing.T, fn func(tx *sqlx.Tx) error) error {
	t.Helper()

	tx, err := testDB.Beginx()
	require.NoError(t, err)

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
