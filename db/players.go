package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/levon-fischer/FantasyFieldhouse/model"
)

// UpsertPlayers refreshes the player catalog. The full catalog is tens of
// thousands of rows, so the writes go through a single pgx batch instead of
// one round trip per player.
func (db *postgresDB) UpsertPlayers(ctx context.Context, players []model.Player) error {
	const query = `INSERT INTO players (
			id, first_name, last_name, position, nfl_team, number, age,
			status, years_exp, height, weight, injury_status, updated
		) VALUES (
			@id, @firstName, @lastName, @position, @nflTeam, @number, @age,
			@status, @yearsExp, @height, @weight, @injuryStatus, @updated
		) ON CONFLICT (id) DO UPDATE SET
			first_name=EXCLUDED.first_name,
			last_name=EXCLUDED.last_name,
			position=EXCLUDED.position,
			nfl_team=EXCLUDED.nfl_team,
			number=EXCLUDED.number,
			age=EXCLUDED.age,
			status=EXCLUDED.status,
			years_exp=EXCLUDED.years_exp,
			height=EXCLUDED.height,
			weight=EXCLUDED.weight,
			injury_status=EXCLUDED.injury_status,
			updated=EXCLUDED.updated`

	now := db.clock.Now().UTC()
	batch := &pgx.Batch{}
	for i := range players {
		p := &players[i]
		batch.Queue(query, pgx.NamedArgs{
			"id":           p.ID,
			"firstName":    p.FirstName,
			"lastName":     p.LastName,
			"position":     p.Position,
			"nflTeam":      p.NFLTeam,
			"number":       p.Number,
			"age":          p.Age,
			"status":       p.Status,
			"yearsExp":     p.YearsExp,
			"height":       p.Height,
			"weight":       p.Weight,
			"injuryStatus": p.InjuryStatus,
			"updated":      now,
		})
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range players {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error upserting player: %w", err)
		}
	}
	return nil
}
