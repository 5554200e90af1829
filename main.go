package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/levon-fischer/FantasyFieldhouse/config"
	"github.com/levon-fischer/FantasyFieldhouse/controller"
	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
	"github.com/levon-fischer/FantasyFieldhouse/web"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.PostgresConnStr, clock)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to DB")
	}

	sleeperClient, err := sleeper.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating sleeper client")
	}

	ctrl, err := controller.New(clock, sleeperClient, db, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating a new controller")
	}

	server, err := web.NewServer(cfg.Port, ctrl)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			logger.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that refreshes the player catalog from sleeper periodically
	wg.Add(1)
	go ctrl.RunPeriodicPlayerUpdates(cfg.PlayerUpdateFrequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	logger.Info().Msg("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
