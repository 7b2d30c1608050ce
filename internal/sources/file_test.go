package sources

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"stacklog/internal/event"
)

func TestFileSource(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test_logs_*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpFile.Name())

	src := &FileSource{
		Path:    tmpFile.Name(),
		Service: "test-service",
		Log:     zerolog.Nop(),
	}

	out := make(chan event.Event, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	testMessage := "test log line\n"
	if _, err := tmpFile.WriteString(testMessage); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, out) }()

	select {
	case evt := <-out:
		if evt.Msg != "test log line" {
			t.Errorf("expected 'test log line', got '%s'", evt.Msg)
		}
		if evt.Attrs["path"] != tmpFile.Name() {
			t.Errorf("expected path attr, got %v", evt.Attrs)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for file event")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected clean stop, got %v", err)
	}
}
