package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"stacklog/internal/event"
	"stacklog/internal/parse"
	"stacklog/internal/payload"
	"stacklog/internal/timelog"
)

type Source interface {
	Run(ctx context.Context, out chan<- event.Event) error
}

type Transformer interface {
	Run(ctx context.Context, in <-chan event.Event, out chan<- event.Event) error
}

// Encoder turns events into payloads.
type Encoder interface {
	Run(ctx context.Context, in <-chan event.Event, out chan<- payload.Payload) error
}

type Sink interface {
	Run(ctx context.Context, in <-chan payload.Payload) error
}

// Pipeline wires sources through parsing and the optional transforms into
// the encoder and finally the sink.
type Pipeline struct {
	Sources    []Source
	Transforms []Transformer
	Encoder    Encoder
	Sink       Sink
	Log        zerolog.Logger
}

// Run blocks until every source is drained and the sink has written the last
// payload, or until the first stage fails. A failing stage cancels the rest.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.Sources) == 0 {
		return fmt.Errorf("pipeline: no sources provided")
	}
	if p.Encoder == nil {
		return fmt.Errorf("pipeline: no encoder provided")
	}
	if p.Sink == nil {
		return fmt.Errorf("pipeline: no sink provided")
	}

	timer := timelog.Start()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(p.Sources)+len(p.Transforms)+2)
	fail := func(stage string, err error) {
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		p.Log.Error().Err(err).Str("stage", stage).Msg("pipeline stage failed")
		select {
		case errCh <- fmt.Errorf("%s: %w", stage, err):
		default:
		}
		cancel()
	}

	sourceChan := make(chan event.Event, 100)
	var wg sync.WaitGroup
	for i, src := range p.Sources {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			fail(fmt.Sprintf("source %d", i), src.Run(ctx, sourceChan))
		}()
	}
	go func() {
		wg.Wait()
		close(sourceChan)
	}()

	parsedChan := make(chan event.Event, 100)
	go func() {
		defer close(parsedChan)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-sourceChan:
				if !ok {
					return
				}
				parse.ParseEvent(&evt)
				select {
				case parsedChan <- evt:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var stageChan <-chan event.Event = parsedChan
	for i, t := range p.Transforms {
		i, t := i, t
		in := stageChan
		tc := make(chan event.Event, 100)
		go func() {
			defer close(tc)
			fail(fmt.Sprintf("transform %d", i), t.Run(ctx, in, tc))
		}()
		stageChan = tc
	}

	payloads := make(chan payload.Payload, 100)
	go func() {
		defer close(payloads)
		fail("encoder", p.Encoder.Run(ctx, stageChan, payloads))
	}()

	sinkErr := p.Sink.Run(ctx, payloads)
	fail("sink", sinkErr)

	p.Log.Debug().Dur("elapsed", timer.Stop()).Msg("pipeline stopped")

	select {
	case err := <-errCh:
		return err
	default:
	}
	if errors.Is(sinkErr, context.Canceled) {
		return nil
	}
	return sinkErr
}
