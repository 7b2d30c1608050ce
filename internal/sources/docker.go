package sources

import (
	"bufio"
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/rs/zerolog"

	"stacklog/internal/event"
)

// DockerSource follows the stdout and stderr of one container.
type DockerSource struct {
	Service     string
	ContainerID string
	Log         zerolog.Logger
}

func (ds *DockerSource) Run(ctx context.Context, out chan<- event.Event) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()

	ds.Log.Info().Str("container", ds.ContainerID).Msg("docker source started")

	options := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Timestamps: false,
	}

	reader, err := cli.ContainerLogs(ctx, ds.ContainerID, options)
	if err != nil {
		return err
	}
	defer reader.Close()

	stdoutReader, stdoutWriter := io.Pipe()
	defer stdoutReader.Close()

	go func() {
		_, err := stdcopy.StdCopy(stdoutWriter, stdoutWriter, reader)
		stdoutWriter.CloseWithError(err)
	}()

	scanner := bufio.NewScanner(stdoutReader)
	for scanner.Scan() {
		msg := scanner.Text()
		if msg == "" {
			continue
		}

		evt := lineEvent(ds.Service, "docker", msg, map[string]any{"container_id": ds.ContainerID})

		select {
		case <-ctx.Done():
			return nil
		case out <- evt:
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		ds.Log.Warn().Err(err).Str("container", ds.ContainerID).Msg("docker scanner error")
		return err
	}
	return nil
}
