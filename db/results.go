package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/levon-fischer/FantasyFieldhouse/model"
)

func (db *postgresDB) GetTeams(ctx context.Context, seasonID string) ([]model.Team, error) {
	const query = `SELECT id, season_id, owner_id, name, year, wins, losses, ties,
						points_for, points_against, moves, commissioner, division, placement
					FROM teams WHERE season_id=@seasonID ORDER BY wins DESC, points_for DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID})
	if err != nil {
		return nil, fmt.Errorf("error loading teams for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	teams := make([]model.Team, 0, 12)
	for rows.Next() {
		var t model.Team
		var division, placement *int
		err := rows.Scan(&t.ID, &t.SeasonID, &t.OwnerID, &t.Name, &t.Year,
			&t.Wins, &t.Losses, &t.Ties, &t.PointsFor, &t.PointsAgainst,
			&t.Moves, &t.Commissioner, &division, &placement)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		if division != nil {
			t.Division = *division
		}
		if placement != nil {
			t.Placement = *placement
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (db *postgresDB) GetMatchups(ctx context.Context, seasonID string, week int) ([]model.Matchup, error) {
	const query = `SELECT season_id, league_id, week, matchup_id, team_id, opponent_team_id,
						owner_id, opponent_owner_id, points_for, points_against,
						win, tie, playoff, consolation, championship, toilet_bowl
					FROM matchups WHERE season_id=@seasonID AND week=@week
					ORDER BY matchup_id, team_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID, "week": week})
	if err != nil {
		return nil, fmt.Errorf("error loading matchups for season %s week %d: %w", seasonID, week, err)
	}
	defer rows.Close()

	matchups := make([]model.Matchup, 0, 12)
	for rows.Next() {
		var m model.Matchup
		err := rows.Scan(&m.SeasonID, &m.LeagueID, &m.Week, &m.MatchupID,
			&m.TeamID, &m.OpponentTeamID, &m.OwnerID, &m.OpponentOwnerID,
			&m.PointsFor, &m.PointsAgainst, &m.Win, &m.Tie,
			&m.Playoff, &m.Consolation, &m.Championship, &m.ToiletBowl)
		if err != nil {
			return nil, fmt.Errorf("error scanning matchup: %w", err)
		}
		matchups = append(matchups, m)
	}
	return matchups, rows.Err()
}

func (db *postgresDB) GetTransactions(ctx context.Context, seasonID string, week int) ([]model.Transaction, error) {
	const query = `SELECT id, season_id, week, type, status, creator_id, created, processed
					FROM transactions WHERE season_id=@seasonID AND week=@week
					ORDER BY id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"seasonID": seasonID, "week": week})
	if err != nil {
		return nil, fmt.Errorf("error loading transactions for season %s week %d: %w", seasonID, week, err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0, 8)
	index := make(map[string]int)
	for rows.Next() {
		var t model.Transaction
		var creator *string
		var created, processed *time.Time
		err := rows.Scan(&t.ID, &t.SeasonID, &t.Week, &t.Type, &t.Status,
			&creator, &created, &processed)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		if creator != nil {
			t.CreatorID = *creator
		}
		if created != nil {
			t.Created = *created
		}
		if processed != nil {
			t.Processed = *processed
		}
		index[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	const itemQuery = `SELECT ti.transaction_id, ti.team_id, ti.player_id, ti.action,
							ti.waiver_order, ti.bid
						FROM transaction_items ti
						JOIN transactions t ON t.id = ti.transaction_id
						WHERE t.season_id=@seasonID AND t.week=@week
						ORDER BY ti.transaction_id, ti.action, ti.player_id`

	itemRows, err := db.pool.Query(ctx, itemQuery, pgx.NamedArgs{"seasonID": seasonID, "week": week})
	if err != nil {
		return nil, fmt.Errorf("error loading transaction items for season %s week %d: %w", seasonID, week, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.TransactionItem
		err := itemRows.Scan(&item.TransactionID, &item.TeamID, &item.PlayerID,
			&item.Action, &item.WaiverOrder, &item.Bid)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction item: %w", err)
		}
		if i, ok := index[item.TransactionID]; ok {
			transactions[i].Items = append(transactions[i].Items, item)
		}
	}
	return transactions, itemRows.Err()
}
