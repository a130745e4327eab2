// Package databasetest starts a throwaway PostgreSQL for store integration tests.
package databasetest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MrJamesThe3rd/carteira/internal/database"
)

var (
	once     sync.Once
	connStr  string
	startErr error
)

// Open returns a migrated database shared by every test in the process.
// Tests are skipped with -short or when Docker is not available.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	once.Do(func() {
		connStr, startErr = start(context.Background())
	})

	if startErr != nil {
		t.Skipf("postgres container unavailable: %v", startErr)
	}

	db, err := database.New(connStr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func start(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "carteira",
			"POSTGRES_PASSWORD": "carteira",
			"POSTGRES_DB":       "carteira",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return "", fmt.Errorf("get postgres host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		container.Terminate(ctx)
		return "", fmt.Errorf("get postgres port: %w", err)
	}

	return fmt.Sprintf("postgres://carteira:carteira@%s:%s/carteira?sslmode=disable", host, port.Port()), nil
}
