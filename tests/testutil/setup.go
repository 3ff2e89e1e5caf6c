// Package testutil provides utilities for integration testing
package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
)

var (
	testDBPool    *pgxpool.Pool
	testContainer testcontainers.Container
	setupOnce     sync.Once
	teardownOnce  sync.Once
)

// TestConfig holds test environment configuration
type TestConfig struct {
	// DatabaseURL points at an existing database; empty starts a container
	DatabaseURL  string
	JWTSecretKey string
}

// DefaultTestConfig returns default test configuration
func DefaultTestConfig() TestConfig {
	return TestConfig{
		DatabaseURL:  os.Getenv("TEST_DATABASE_URL"),
		JWTSecretKey: "test-secret-key-for-integration-tests",
	}
}

// SetupTestEnvironment returns a migrated pool shared by every suite in the package
func SetupTestEnvironment(t *testing.T) *pgxpool.Pool {
	t.Helper()

	config := DefaultTestConfig()

	setupOnce.Do(func() {
		ctx := context.Background()

		dsn := config.DatabaseURL
		if dsn == "" {
			dsn = startPostgresContainer(ctx)
		}

		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatalf("Failed to connect to test database: %v", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping test database: %v", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		testDBPool = pool
	})

	return testDBPool
}

func startPostgresContainer(ctx context.Context) string {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "ryg_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("Failed to start postgres container: %v", err)
	}
	testContainer = container

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatalf("Failed to get container port: %v", err)
	}

	return fmt.Sprintf("postgres://test:test@%s:%s/ryg_test?sslmode=disable", host, port.Port())
}

// CleanupTestEnvironment closes the pool and stops the container
func CleanupTestEnvironment() {
	teardownOnce.Do(func() {
		if testDBPool != nil {
			testDBPool.Close()
		}
		if testContainer != nil {
			if err := testContainer.Terminate(context.Background()); err != nil {
				log.Printf("Failed to terminate container: %v", err)
			}
		}
	})
}

// TruncateTables clears specified tables for test isolation
func TruncateTables(t *testing.T, pool *pgxpool.Pool, tables ...string) {
	t.Helper()
	ctx := context.Background()

	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}
