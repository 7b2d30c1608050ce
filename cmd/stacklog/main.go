package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"stacklog/internal/app"
	"stacklog/internal/config"
)

func main() {
	configPath := flag.String("c", "", "path to config file")
	envFile := flag.String("env", ".env", "dotenv file loaded before the config, ignored if missing")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *configPath == "" {
		logger.Fatal().Msg("config file is required (-c)")
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("could not validate config")
	}

	level, err := zerolog.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid log level")
	}
	logger = logger.Level(level)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	a := app.New(cfg, logger)
	if err := a.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("stacklog stopped with error")
	}
}
