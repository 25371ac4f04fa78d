// Package testhelper spins up throwaway backing services for tests.
// Every helper skips the calling test when the container runtime is
// unavailable.
package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quirzy/backend/internal/store"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewPostgresPool starts a disposable Postgres container and returns a
// pool connected to it.
func NewPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "quirzy",
			"POSTGRES_PASSWORD": "quirzy",
			"POSTGRES_DB":       "quirzy_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		),
	}

	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create Postgres container: %v", err)
	}

	t.Cleanup(func() {
		_ = pgC.Terminate(context.Background())
	})

	endpoint, err := pgC.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get Postgres container endpoint: %v", err)
	}

	pool, err := pgxpool.New(ctx, fmt.Sprintf("postgres://quirzy:quirzy@%s/quirzy_test?sslmode=disable", endpoint))
	if err != nil {
		t.Skipf("failed to connect to Postgres container: %v", err)
	}

	t.Cleanup(pool.Close)

	return pool
}

// NewStore returns a migrated Store backed by a disposable Postgres
// container.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.NewFromPool(NewPostgresPool(t))
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return s
}
