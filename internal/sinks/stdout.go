package sinks

import (
	"context"
	"io"
	"os"

	"stacklog/internal/payload"
)

// StdoutSink writes one encoded payload per line. A nil Writer means stdout.
type StdoutSink struct {
	Writer  io.Writer
	Encoder Encoder
}

func (s *StdoutSink) Run(ctx context.Context, in <-chan payload.Payload) error {
	w := s.Writer
	if w == nil {
		w = os.Stdout
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-in:
			if !ok {
				return nil
			}
			data, err := s.Encoder.Encode(p)
			if err != nil {
				return err
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return err
			}
		}
	}
}
