package transform

import (
	"context"

	"github.com/rs/zerolog"

	"stacklog/internal/event"
	"stacklog/internal/payload"
)

// Stackdriver is the pipeline stage that renders each event and turns it into
// a payload. Events failing the transformer's preconditions are logged and
// dropped.
type Stackdriver struct {
	Reduced bool
	Log     zerolog.Logger
}

func (s *Stackdriver) Run(ctx context.Context, in <-chan event.Event, out chan<- payload.Payload) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-in:
			if !ok {
				return nil
			}
			p, err := Transform(evt, evt.RenderMessage(), s.Reduced)
			if err != nil {
				s.Log.Warn().Err(err).Str("logger", evt.Name).Msg("dropping log event")
				continue
			}
			select {
			case out <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
