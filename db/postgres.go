package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/levon-fischer/FantasyFieldhouse/model"
)

var (
	ErrSeasonNotFound error = errors.New("season not found")
	ErrLeagueNotFound error = errors.New("league not found")
	ErrUserNotFound   error = errors.New("user not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	const query = `SELECT id, league_id, name, year, status, total_rosters, start_week,
						playoff_week_start, playoff_teams, reserve_slots, taxi_slots,
						scoring, roster_positions, previous_season_id, draft_id
					FROM seasons WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	s, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("error scanning season %s: %w", id, err)
	}
	return s, nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT id, name FROM leagues WHERE id=@id`

	var l model.League
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %d: %w", id, err)
	}

	l.Seasons, err = db.getLeagueSeasons(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading seasons for league %d: %w", id, err)
	}
	return &l, nil
}

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.League, error) {
	const query = `SELECT id, name FROM leagues ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}
	defer rows.Close()

	results := make([]model.League, 0, 8)
	for rows.Next() {
		var l model.League
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (db *postgresDB) getLeagueSeasons(ctx context.Context, leagueID int32) ([]model.Season, error) {
	const query = `SELECT id, league_id, name, year, status, total_rosters, start_week,
						playoff_week_start, playoff_teams, reserve_slots, taxi_slots,
						scoring, roster_positions, previous_season_id, draft_id
					FROM seasons WHERE league_id=@leagueID ORDER BY year`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]model.Season, 0, 4)
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, *s)
	}
	return seasons, rows.Err()
}

func scanSeason(row pgx.Row) (*model.Season, error) {
	var s model.Season
	var leagueID *int32
	var prev, draftID *string
	var scoring, positions []byte
	err := row.Scan(
		&s.ID,
		&leagueID,
		&s.Name,
		&s.Year,
		&s.Status,
		&s.TotalRosters,
		&s.StartWeek,
		&s.PlayoffWeekStart,
		&s.PlayoffTeams,
		&s.ReserveSlots,
		&s.TaxiSlots,
		&scoring,
		&positions,
		&prev,
		&draftID)
	if err != nil {
		return nil, err
	}

	if leagueID != nil {
		s.LeagueID = *leagueID
	}
	if prev != nil {
		s.PreviousSeasonID = *prev
	}
	if draftID != nil {
		s.DraftID = *draftID
	}
	if err := json.Unmarshal(scoring, &s.Scoring); err != nil {
		return nil, fmt.Errorf("error decoding scoring settings: %w", err)
	}
	if err := json.Unmarshal(positions, &s.RosterPositions); err != nil {
		return nil, fmt.Errorf("error decoding roster positions: %w", err)
	}
	return &s, nil
}

// SaveLeagueHistory writes everything one resolution staged in a single
// transaction. Every insert is ON CONFLICT DO NOTHING so a concurrent
// resolution that landed part of the same lineage first turns the overlap
// into a no-op instead of failing the batch.
func (db *postgresDB) SaveLeagueHistory(ctx context.Context, h *model.LeagueHistory) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	leagueID := h.LeagueID
	if h.League != nil {
		const query = `INSERT INTO leagues (name) VALUES (@name) RETURNING id`
		if err := tx.QueryRow(ctx, query, pgx.NamedArgs{"name": h.League.Name}).Scan(&leagueID); err != nil {
			return fmt.Errorf("error inserting league: %w", err)
		}
		h.League.ID = leagueID
	}

	for i := range h.Seasons {
		rec := &h.Seasons[i]
		// The league id does not exist while seasons are being staged, so
		// every row that carries it gets backfilled here.
		rec.Season.LeagueID = leagueID
		for j := range rec.Matchups {
			rec.Matchups[j].LeagueID = leagueID
		}
		if err := db.insertSeasonRecord(ctx, tx, rec); err != nil {
			return fmt.Errorf("error saving season %s: %w", rec.Season.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing league history: %w", err)
	}
	return nil
}

func (db *postgresDB) insertSeasonRecord(ctx context.Context, tx pgx.Tx, rec *model.SeasonRecord) error {
	if err := insertSeason(ctx, tx, &rec.Season); err != nil {
		return err
	}
	for i := range rec.Divisions {
		if err := insertDivision(ctx, tx, &rec.Divisions[i]); err != nil {
			return err
		}
	}
	// Users before teams, teams before matchups: the foreign keys flow in
	// that order.
	for i := range rec.Users {
		if err := db.insertUser(ctx, tx, &rec.Users[i]); err != nil {
			return err
		}
	}
	for i := range rec.Teams {
		if err := insertTeam(ctx, tx, &rec.Teams[i]); err != nil {
			return err
		}
	}
	for i := range rec.Matchups {
		if err := insertMatchup(ctx, tx, &rec.Matchups[i]); err != nil {
			return err
		}
	}
	for i := range rec.Transactions {
		if err := insertTransaction(ctx, tx, &rec.Transactions[i]); err != nil {
			return err
		}
	}
	if rec.Draft != nil {
		if err := insertDraft(ctx, tx, rec.Draft, rec.Picks); err != nil {
			return err
		}
	}
	return nil
}

func insertSeason(ctx context.Context, tx pgx.Tx, s *model.Season) error {
	const query = `INSERT INTO seasons (
			id, league_id, name, year, status, total_rosters, start_week,
			playoff_week_start, playoff_teams, reserve_slots, taxi_slots,
			scoring, roster_positions, previous_season_id, draft_id
		) VALUES (
			@id, @leagueID, @name, @year, @status, @totalRosters, @startWeek,
			@playoffWeekStart, @playoffTeams, @reserveSlots, @taxiSlots,
			@scoring, @rosterPositions, @previousSeasonID, @draftID
		) ON CONFLICT (id) DO NOTHING`

	scoring, err := json.Marshal(s.Scoring)
	if err != nil {
		return fmt.Errorf("error encoding scoring settings: %w", err)
	}
	positions, err := json.Marshal(s.RosterPositions)
	if err != nil {
		return fmt.Errorf("error encoding roster positions: %w", err)
	}

	args := pgx.NamedArgs{
		"id":               s.ID,
		"leagueID":         s.LeagueID,
		"name":             s.Name,
		"year":             s.Year,
		"status":           s.Status,
		"totalRosters":     s.TotalRosters,
		"startWeek":        s.StartWeek,
		"playoffWeekStart": s.PlayoffWeekStart,
		"playoffTeams":     s.PlayoffTeams,
		"reserveSlots":     s.ReserveSlots,
		"taxiSlots":        s.TaxiSlots,
		"scoring":          scoring,
		"rosterPositions":  positions,
		"previousSeasonID": nullIfEmpty(s.PreviousSeasonID),
		"draftID":          nullIfEmpty(s.DraftID),
	}
	_, err = tx.Exec(ctx, query, args)
	return err
}

func insertDivision(ctx context.Context, tx pgx.Tx, d *model.Division) error {
	const query = `INSERT INTO divisions (season_id, number, name)
					VALUES (@seasonID, @number, @name)
					ON CONFLICT (season_id, number) DO NOTHING`

	_, err := tx.Exec(ctx, query, pgx.NamedArgs{
		"seasonID": d.SeasonID,
		"number":   d.Number,
		"name":     d.Name,
	})
	return err
}

func (db *postgresDB) insertUser(ctx context.Context, tx pgx.Tx, u *model.User) error {
	const query = `INSERT INTO users (id, username, email, password_hash, registered, created)
					VALUES (@id, @username, @email, @passwordHash, @registered, @created)
					ON CONFLICT (id) DO NOTHING`

	_, err := tx.Exec(ctx, query, pgx.NamedArgs{
		"id":           u.ID,
		"username":     u.Username,
		"email":        nullIfEmpty(u.Email),
		"passwordHash": nullIfEmpty(u.PasswordHash),
		"registered":   u.Registered,
		"created":      db.clock.Now().UTC(),
	})
	return err
}

func insertTeam(ctx context.Context, tx pgx.Tx, t *model.Team) error {
	const query = `INSERT INTO teams (
			id, season_id, owner_id, name, year, wins, losses, ties,
			points_for, points_against, moves, commissioner, division, placement
		) VALUES (
			@id, @seasonID, @ownerID, @name, @year, @wins, @losses, @ties,
			@pointsFor, @pointsAgainst, @moves, @commissioner, @division, @placement
		) ON CONFLICT (id) DO NOTHING`

	args := pgx.NamedArgs{
		"id":            t.ID,
		"seasonID":      t.SeasonID,
		"ownerID":       t.OwnerID,
		"name":          t.Name,
		"year":          t.Year,
		"wins":          t.Wins,
		"losses":        t.Losses,
		"ties":          t.Ties,
		"pointsFor":     t.PointsFor,
		"pointsAgainst": t.PointsAgainst,
		"moves":         t.Moves,
		"commissioner":  t.Commissioner,
		"division":      zeroToNull(t.Division),
		"placement":     zeroToNull(t.Placement),
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return err
	}

	const joinQuery = `INSERT INTO team_players (team_id, player_id)
						VALUES (@teamID, @playerID)
						ON CONFLICT (team_id, player_id) DO NOTHING`
	for _, playerID := range t.Players {
		joinArgs := pgx.NamedArgs{"teamID": t.ID, "playerID": playerID}
		if _, err := tx.Exec(ctx, joinQuery, joinArgs); err != nil {
			return err
		}
	}
	return nil
}

func insertMatchup(ctx context.Context, tx pgx.Tx, m *model.Matchup) error {
	const query = `INSERT INTO matchups (
			season_id, league_id, week, matchup_id, team_id, opponent_team_id,
			owner_id, opponent_owner_id, points_for, points_against,
			win, tie, playoff, consolation, championship, toilet_bowl
		) VALUES (
			@seasonID, @leagueID, @week, @matchupID, @teamID, @opponentTeamID,
			@ownerID, @opponentOwnerID, @pointsFor, @pointsAgainst,
			@win, @tie, @playoff, @consolation, @championship, @toiletBowl
		) ON CONFLICT (season_id, week, matchup_id, team_id) DO NOTHING`

	args := pgx.NamedArgs{
		"seasonID":        m.SeasonID,
		"leagueID":        m.LeagueID,
		"week":            m.Week,
		"matchupID":       m.MatchupID,
		"teamID":          m.TeamID,
		"opponentTeamID":  m.OpponentTeamID,
		"ownerID":         m.OwnerID,
		"opponentOwnerID": m.OpponentOwnerID,
		"pointsFor":       m.PointsFor,
		"pointsAgainst":   m.PointsAgainst,
		"win":             m.Win,
		"tie":             m.Tie,
		"playoff":         m.Playoff,
		"consolation":     m.Consolation,
		"championship":    m.Championship,
		"toiletBowl":      m.ToiletBowl,
	}
	_, err := tx.Exec(ctx, query, args)
	return err
}

func insertTransaction(ctx context.Context, tx pgx.Tx, t *model.Transaction) error {
	const query = `INSERT INTO transactions (
			id, season_id, week, type, status, creator_id, created, processed
		) VALUES (
			@id, @seasonID, @week, @type, @status, @creatorID, @created, @processed
		) ON CONFLICT (id) DO NOTHING`

	args := pgx.NamedArgs{
		"id":        t.ID,
		"seasonID":  t.SeasonID,
		"week":      t.Week,
		"type":      t.Type,
		"status":    t.Status,
		"creatorID": nullIfEmpty(t.CreatorID),
		"created":   nullIfZeroTime(t.Created),
		"processed": nullIfZeroTime(t.Processed),
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return err
	}

	const itemQuery = `INSERT INTO transaction_items (
			transaction_id, team_id, player_id, action, waiver_order, bid
		) VALUES (
			@transactionID, @teamID, @playerID, @action, @waiverOrder, @bid
		) ON CONFLICT (transaction_id, team_id, player_id, action) DO NOTHING`
	for i := range t.Items {
		item := &t.Items[i]
		itemArgs := pgx.NamedArgs{
			"transactionID": item.TransactionID,
			"teamID":        item.TeamID,
			"playerID":      item.PlayerID,
			"action":        item.Action,
			"waiverOrder":   item.WaiverOrder,
			"bid":           item.Bid,
		}
		if _, err := tx.Exec(ctx, itemQuery, itemArgs); err != nil {
			return err
		}
	}
	return nil
}

func insertDraft(ctx context.Context, tx pgx.Tx, d *model.Draft, picks []model.DraftPick) error {
	const query = `INSERT INTO drafts (
			id, season_id, status, type, year, rounds, pick_timer, scoring_type, start_time
		) VALUES (
			@id, @seasonID, @status, @type, @year, @rounds, @pickTimer, @scoringType, @startTime
		) ON CONFLICT (id) DO NOTHING`

	args := pgx.NamedArgs{
		"id":          d.ID,
		"seasonID":    d.SeasonID,
		"status":      d.Status,
		"type":        d.Type,
		"year":        d.Year,
		"rounds":      d.Rounds,
		"pickTimer":   d.PickTimer,
		"scoringType": d.ScoringType,
		"startTime":   d.StartTime,
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return err
	}

	const pickQuery = `INSERT INTO draft_picks (
			draft_id, team_id, player_id, round, pick_num, slot, keeper
		) VALUES (
			@draftID, @teamID, @playerID, @round, @pickNum, @slot, @keeper
		) ON CONFLICT (draft_id, pick_num) DO NOTHING`
	for i := range picks {
		p := &picks[i]
		pickArgs := pgx.NamedArgs{
			"draftID":  p.DraftID,
			"teamID":   p.TeamID,
			"playerID": p.PlayerID,
			"round":    p.Round,
			"pickNum":  p.PickNum,
			"slot":     p.Slot,
			"keeper":   p.Keeper,
		}
		if _, err := tx.Exec(ctx, pickQuery, pickArgs); err != nil {
			return err
		}
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func zeroToNull(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
