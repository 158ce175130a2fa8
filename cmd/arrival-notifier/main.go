package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	arrival "github.com/YutaHarimoto2025/auto-line-arrival-message"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/config"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/estimator"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/gtfs"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/line"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/odpt"
	"github.com/YutaHarimoto2025/auto-line-arrival-message/tracking"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the configuration file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load credentials")
	}

	// The schedule store must load before the first webhook is served;
	// a broken dataset is fatal here, not at estimation time.
	store, err := gtfs.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load schedule dataset")
	}

	trackStore, err := tracking.OpenStore(cfg.Tracking.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open tracking store")
	}
	defer trackStore.Close()
	tracker := tracking.New(trackStore, cfg.Tracking)

	timetable := odpt.NewClient(cfg.ODPT, secrets.ODPTToken)
	est := estimator.New(store, timetable, cfg.Stations, cfg.ODPT.Direction)
	notifier := line.NewClient(cfg.LINE, secrets.LINEToken, secrets.LINEUserID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var refresher arrival.DatasetRefresher
	if cfg.Dataset.ArchiveURL != "" {
		r := gtfs.NewRefresher(store, cfg.Dataset.ArchiveURL,
			time.Duration(cfg.Dataset.RefreshIntervalMS)*time.Millisecond)
		go r.Run(ctx)
		refresher = r
	}

	srv := arrival.NewServer(cfg.Server, tracker, est, notifier, store, refresher)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("webhook server listening")
		if err := srv.Run(cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")
	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
