package sources

import (
	"context"

	"github.com/hpcloud/tail"
	"github.com/rs/zerolog"

	"stacklog/internal/event"
)

// FileSource follows a file the way tail -F does.
type FileSource struct {
	Service string
	Path    string
	Log     zerolog.Logger
}

func (fs *FileSource) Run(ctx context.Context, out chan<- event.Event) error {
	t, err := tail.TailFile(fs.Path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	defer t.Cleanup()

	fs.Log.Info().Str("path", fs.Path).Msg("file source started")

	for {
		select {
		case <-ctx.Done():
			fs.Log.Info().Str("path", fs.Path).Msg("file source stopping")
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				fs.Log.Warn().Err(line.Err).Str("path", fs.Path).Msg("tail line error")
				continue
			}

			e := lineEvent(fs.Service, "file", line.Text, map[string]any{"path": fs.Path})

			select {
			case <-ctx.Done():
				_ = t.Stop()
				return nil
			case out <- e:
			}
		}
	}
}
