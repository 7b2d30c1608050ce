package sources

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"stacklog/internal/event"
)

func TestDockerSource_WithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("docker source test needs a container runtime")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:      "alpine",
		Cmd:        []string{"sh", "-c", "echo 'test-docker-log'"},
		WaitingFor: wait.ForLog("test-docker-log"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	defer container.Terminate(ctx)

	containerID := container.GetContainerID()

	src := &DockerSource{
		ContainerID: containerID,
		Service:     "test-docker-service",
		Log:         zerolog.Nop(),
	}

	out := make(chan event.Event, 1)
	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	go src.Run(runCtx, out)

	select {
	case evt := <-out:
		if evt.Msg != "test-docker-log" {
			t.Errorf("expected 'test-docker-log', got '%s'", evt.Msg)
		}
		if evt.Attrs["source"] != "docker" {
			t.Errorf("expected source 'docker', got '%v'", evt.Attrs["source"])
		}
		if evt.Attrs["container_id"] != containerID {
			t.Errorf("expected container_id %q, got %v", containerID, evt.Attrs["container_id"])
		}
	case <-runCtx.Done():
		t.Fatal("timed out waiting for docker logs")
	}
}
