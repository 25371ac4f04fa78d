package testhelper

import (
	"context"
	"testing"

	"github.com/redis/rueidis"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewRedisClient starts a disposable Redis container and returns a
// rueidis client connected to it.
func NewRedisClient(t *testing.T) rueidis.Client {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create Redis container: %v", err)
	}

	t.Cleanup(func() {
		_ = redisC.Terminate(context.Background())
	})

	endpoint, err := redisC.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get Redis container endpoint: %v", err)
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{endpoint},
		DisableCache: true,
	})
	if err != nil {
		t.Skipf("failed to create Redis client: %v", err)
	}

	t.Cleanup(client.Close)

	return client
}
