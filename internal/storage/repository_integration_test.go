//go:build integration
// +build integration

package storage

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

	"github.com/guttosm/b3stream/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "b3stream",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=b3stream sslmode=disable", host, port.Port())
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

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "b3stream")
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
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedRows(n int, ticker string) []models.Row {
	base := time.Date(2025, 6, 11, 11, 0, 0, 0, time.UTC)
	rows := make([]models.Row, 0, n)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		rows = append(rows, models.Row{
			Date:       "11-06-2025",
			Time:       at.Format("15:04:05,000"),
			Ticker:     ticker,
			Quantity:   int64(10 * (i + 1)),
			Price:      85.5,
			Volume:     float64(855 * (i + 1)),
			Type:       "Negócio",
			Canceled:   "-",
			ReceivedAt: at.Format(time.RFC3339Nano),
		})
	}
	return rows
}

func TestRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewRowsRepository(db)

	// Batch insert two tickers
	if err := repo.InsertRowsBatch(append(seedRows(3, "CBIO"), seedRows(2, "TAEE11")...)); err != nil {
		t.Fatalf("insert batch: %v", err)
	}

	t.Run("count", func(t *testing.T) {
		n, err := repo.CountRows()
		if err != nil || n != 5 {
			t.Fatalf("count: n=%d err=%v", n, err)
		}
	})

	t.Run("list by ticker newest first", func(t *testing.T) {
		rows, err := repo.ListByTicker("CBIO", 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("rows=%d, want 3", len(rows))
		}
		if rows[0].Quantity != 30 {
			t.Fatalf("expected newest first, got %+v", rows[0])
		}
		for _, r := range rows {
			if r.Ticker != "CBIO" {
				t.Fatalf("foreign ticker leaked: %+v", r)
			}
		}
	})

	t.Run("list respects limit", func(t *testing.T) {
		rows, err := repo.ListByTicker("CBIO", 2)
		if err != nil || len(rows) != 2 {
			t.Fatalf("rows=%d err=%v, want 2", len(rows), err)
		}
	})

	t.Run("absent ticker is empty not error", func(t *testing.T) {
		rows, err := repo.ListByTicker("PETR4", 10)
		if err != nil || len(rows) != 0 {
			t.Fatalf("rows=%d err=%v, want 0", len(rows), err)
		}
	})
}
