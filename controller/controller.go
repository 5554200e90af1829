package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
	"github.com/rs/zerolog"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// ResolveLeagueHistory walks the previous-season chain backward from
	// seasonID, creates the League aggregate if the chain never reconnects
	// with known history, and ingests every undiscovered season. Calling it
	// again with any season id already linked into an ingested lineage is a
	// no-op.
	ResolveLeagueHistory(ctx context.Context, seasonID string) error

	// ImportLeaguesForUser resolves the history of every league the user is
	// currently in. Runs once per user at registration.
	ImportLeaguesForUser(ctx context.Context, userID string) error

	// RegisterUser upgrades an existing shadow user with the same username
	// (matched case-insensitively) to registered, or creates a new
	// registered user after confirming the handle with the remote system.
	RegisterUser(ctx context.Context, username, email, password string) (*model.User, error)

	GetLeague(ctx context.Context, id int32) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	GetSeasonStandings(ctx context.Context, seasonID string) ([]model.Team, error)
	GetSeasonResults(ctx context.Context, seasonID string, week int) ([]model.Matchup, error)
	GetSeasonTransactions(ctx context.Context, seasonID string, week int) ([]model.Transaction, error)

	UpdatePlayers(ctx context.Context) error
	RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock   clock.Clock
	sleeper sleeper.Client
	db      db.DB
	log     zerolog.Logger
}

func New(clock clock.Clock, sleeper sleeper.Client, db db.DB, log zerolog.Logger) (C, error) {
	c := &controller{
		clock:   clock,
		sleeper: sleeper,
		db:      db,
		log:     log,
	}
	return c, nil
}

func (c *controller) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	return c.db.GetLeague(ctx, id)
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) GetSeasonStandings(ctx context.Context, seasonID string) ([]model.Team, error) {
	return c.db.GetTeams(ctx, seasonID)
}

func (c *controller) GetSeasonResults(ctx context.Context, seasonID string, week int) ([]model.Matchup, error) {
	return c.db.GetMatchups(ctx, seasonID, week)
}

func (c *controller) GetSeasonTransactions(ctx context.Context, seasonID string, week int) ([]model.Transaction, error) {
	return c.db.GetTransactions(ctx, seasonID, week)
}

func (c *controller) UpdatePlayers(ctx context.Context) error {
	players, err := c.sleeper.LoadPlayers()
	if err != nil {
		return err
	}
	c.log.Info().Int("count", len(players)).Msg("refreshing player catalog")
	return c.db.UpsertPlayers(ctx, players)
}

func (c *controller) RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			if err := c.UpdatePlayers(ctx); err != nil {
				c.log.Err(err).Msg("periodic player update failed")
			}
			cancel()
		}
	}
}
