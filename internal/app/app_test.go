package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacklog/internal/config"
	"stacklog/internal/sources"
	"stacklog/internal/transform"
)

func TestBuild(t *testing.T) {
	cfg := &config.Config{
		Output: config.OutputConfig{Reduced: true},
		Sources: map[string]config.SourceConfig{
			"b-file":   {Type: "file", Path: "/tmp/x.log"},
			"a-docker": {Type: "docker", Service: "api", ContainerID: "abc"},
		},
		Transforms: map[string]config.TransformConfig{
			"a-case": {Type: "remap", Inputs: []string{"b-tag"}, Case: "upper"},
			"b-tag":  {Type: "remap", Inputs: []string{"a-docker"}, AddFields: map[string]string{"env": "prod"}},
		},
		Sink: config.SinkConfig{Type: "stdout"},
	}

	p, err := New(cfg, zerolog.Nop()).build()
	require.NoError(t, err)

	require.Len(t, p.Sources, 2)
	docker, ok := p.Sources[0].(*sources.DockerSource)
	require.True(t, ok, "sources are built in name order")
	assert.Equal(t, "api", docker.Service)
	file, ok := p.Sources[1].(*sources.FileSource)
	require.True(t, ok)
	assert.Equal(t, "b-file", file.Service, "service defaults to the source name")

	require.Len(t, p.Transforms, 2, "transforms follow their inputs, not their names")
	assert.Equal(t, "prod", p.Transforms[0].(*transform.RemapTransform).AddFields["env"])
	assert.Equal(t, "upper", p.Transforms[1].(*transform.RemapTransform).Case)

	assert.True(t, p.Encoder.(*transform.Stackdriver).Reduced)
}

func TestBuild_UnknownTypes(t *testing.T) {
	cfg := &config.Config{Sources: map[string]config.SourceConfig{"x": {Type: "kafka"}}}
	_, err := New(cfg, zerolog.Nop()).build()
	assert.ErrorContains(t, err, "unknown type")

	cfg = &config.Config{
		Sources: map[string]config.SourceConfig{"x": {Type: "stdin"}},
		Sink:    config.SinkConfig{Type: "http"},
	}
	_, err = New(cfg, zerolog.Nop()).build()
	assert.ErrorContains(t, err, "sink")
}

func TestRun_FileToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	line := `{"levelname":"ERROR","created":1700000000.25,"msg":"payment failed","order":7}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(line), 0o644))

	cfg := &config.Config{
		Sources: map[string]config.SourceConfig{"app": {Type: "file", Path: path}},
		Sink:    config.SinkConfig{Type: "stdout"},
	}

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg, zerolog.Nop()).WithOutput(&out).Run(ctx) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "payment failed") },
		5*time.Second, 20*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &got))
	assert.Equal(t, "ERROR", got["severity"])
	assert.Equal(t, map[string]any{"seconds": float64(1700000000), "nanos": float64(250000000)}, got["timestamp"])
	extra := got["extra"].(map[string]any)
	assert.Equal(t, float64(7), extra["order"])
	assert.Equal(t, path, extra["path"])
}
