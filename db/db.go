package db

import (
	"context"

	"github.com/levon-fischer/FantasyFieldhouse/model"
)

type DB interface {
	// GetSeason returns ErrSeasonNotFound when the season id has never been
	// ingested. This is the idempotence entry point for league resolution.
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)

	// SaveLeagueHistory commits one resolution's staged rows in a single
	// transaction. Rows that already exist are left untouched; a concurrent
	// resolution landing the same season first must not fail the batch.
	SaveLeagueHistory(ctx context.Context, h *model.LeagueHistory) error

	GetUser(ctx context.Context, id string) (*model.User, error)
	// GetUserByUsername matches case-insensitively; usernames are identity
	// keys system-wide.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	InsertUser(ctx context.Context, u *model.User) error
	// UpgradeUser flips an existing shadow row to registered in place,
	// keeping the same id.
	UpgradeUser(ctx context.Context, id, email, passwordHash string) error

	GetTeams(ctx context.Context, seasonID string) ([]model.Team, error)
	GetMatchups(ctx context.Context, seasonID string, week int) ([]model.Matchup, error)
	GetTransactions(ctx context.Context, seasonID string, week int) ([]model.Transaction, error)

	UpsertPlayers(ctx context.Context, players []model.Player) error
}
