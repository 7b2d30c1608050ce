package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"stacklog/internal/config"
	"stacklog/internal/pipeline"
	"stacklog/internal/sinks"
	"stacklog/internal/sources"
	"stacklog/internal/timelog"
	"stacklog/internal/transform"
)

type App struct {
	cfg *config.Config
	log zerolog.Logger
	out io.Writer
}

func New(cfg *config.Config, log zerolog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// WithOutput redirects payload output, which goes to stdout by default.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

func (a *App) Run(ctx context.Context) error {
	p, err := a.build()
	if err != nil {
		return err
	}

	a.log.Info().Int("sources", len(p.Sources)).Int("transforms", len(p.Transforms)).Msg("stacklog starting")
	uptime := timelog.Track(func() { err = p.Run(ctx) })
	a.log.Info().Dur("uptime", uptime).Msg("stacklog stopped")
	return err
}

func (a *App) build() (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{
		Encoder: &transform.Stackdriver{Reduced: a.cfg.Output.Reduced, Log: a.log},
		Log:     a.log,
	}

	for _, name := range sortedKeys(a.cfg.Sources) {
		src, err := a.source(name, a.cfg.Sources[name])
		if err != nil {
			return nil, err
		}
		p.Sources = append(p.Sources, src)
	}

	order, err := a.cfg.TransformOrder()
	if err != nil {
		return nil, err
	}
	for _, w := range a.cfg.RoutingWarnings(order) {
		a.log.Warn().Msg(w)
	}
	for _, name := range order {
		t := a.cfg.Transforms[name]
		switch t.Type {
		case "remap":
			p.Transforms = append(p.Transforms, &transform.RemapTransform{AddFields: t.AddFields, Case: t.Case})
		default:
			return nil, fmt.Errorf("transform [%s]: unknown type %q", name, t.Type)
		}
	}

	switch a.cfg.Sink.Type {
	case "stdout", "":
		p.Sink = &sinks.StdoutSink{
			Writer:  a.out,
			Encoder: sinks.Encoder{Pretty: a.cfg.Output.Pretty, Color: a.cfg.Output.Color},
		}
	default:
		return nil, fmt.Errorf("sink: unknown type %q", a.cfg.Sink.Type)
	}

	return p, nil
}

func (a *App) source(name string, s config.SourceConfig) (pipeline.Source, error) {
	service := s.Service
	if service == "" {
		service = name
	}
	log := a.log.With().Str("source", name).Logger()

	switch s.Type {
	case "stdin":
		return &sources.StdinSource{Service: service}, nil
	case "file":
		return &sources.FileSource{Service: service, Path: s.Path, Log: log}, nil
	case "docker":
		return &sources.DockerSource{Service: service, ContainerID: s.ContainerID, Log: log}, nil
	}
	return nil, fmt.Errorf("source [%s]: unknown type %q", name, s.Type)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
