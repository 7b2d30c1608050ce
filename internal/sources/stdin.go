package sources

import (
	"bufio"
	"context"
	"io"
	"os"

	"stacklog/internal/event"
)

// StdinSource reads lines from Reader, or from os.Stdin when Reader is nil.
type StdinSource struct {
	Service string
	Reader  io.Reader
}

func (s *StdinSource) Run(ctx context.Context, out chan<- event.Event) error {
	r := s.Reader
	if r == nil {
		r = os.Stdin
	}
	reader := bufio.NewScanner(r)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !reader.Scan() {
			return reader.Err()
		}

		evt := lineEvent(s.Service, "stdin", reader.Text(), nil)

		select {
		case out <- evt:
		case <-ctx.Done():
			return nil
		}
	}
}
