//go:build integration
// +build integration

package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/cryptorec/internal/storage"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "cryptorec",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=cryptorec sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "cryptorec")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/ingestion → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestIngestion_EndToEnd_LoadDirIntoPostgres(t *testing.T) {
	dsn, term := startPostgres(t)
	defer term()

	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	dir := t.TempDir()
	writeInputFile(t, dir, "BTC_values.csv", header+"1641009600000,BTC,46813.21\n1641020400000,BTC,46979.61\n1641031200000,BTC,47143.98\n")
	writeInputFile(t, dir, "ETH_values.csv", header+"1641009600000,ETH,3715.32\n1641020400000,eth,3718.67\n1641031200000,ETH,not-a-price\n")
	writeInputFile(t, dir, "SOL_values.csv", header+"1641009600000,SOL,170.3\n")

	store := storage.NewPostgresStore(db)
	ctx := context.Background()

	rep, err := NewIngestor(store, Options{BatchSize: 2, Parallel: 3}).LoadDir(ctx, dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if rep.Files != 3 || rep.Loaded != 5 || rep.Skipped != 2 {
		t.Fatalf("unexpected report %+v", rep)
	}

	var cnt int
	if err := db.QueryRow(`SELECT COUNT(*) FROM prices WHERE symbol = 'ETH'`).Scan(&cnt); err != nil {
		t.Fatalf("count: %v", err)
	}
	if cnt != 2 {
		t.Fatalf("expected 2 ETH rows stored with canonical symbol, got %d", cnt)
	}

	newest, err := store.FirstByTime(ctx, "BTC", storage.Descending)
	if err != nil || newest == nil {
		t.Fatalf("newest BTC: %v %v", newest, err)
	}
	if newest.Price != 47143.98 || !newest.Timestamp.Equal(time.UnixMilli(1641031200000).UTC()) {
		t.Fatalf("unexpected newest BTC %+v", newest)
	}
}
