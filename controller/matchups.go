package controller

import (
	"fmt"

	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
)

// scoreSide computes one side's outcome. A win is strictly more points than
// the opponent. A tie requires equal AND nonzero scores: a zero score is
// always a loss, even at 0-0, so weeks where no lineup was set never count
// as ties.
func scoreSide(pointsFor, pointsAgainst float64) (win, tie bool) {
	if pointsFor == 0 {
		return false, false
	}
	if pointsFor > pointsAgainst {
		return true, false
	}
	if pointsFor == pointsAgainst {
		return false, true
	}
	return false, false
}

// resolveWeek pairs one week's raw rows by their shared matchup id and emits
// two model.Matchup rows per pairing, one per side. Rows with a nil matchup
// id are byes and are skipped, as is any roster missing from the roster map.
// idx is nil for regular-season weeks; for postseason weeks it supplies the
// bracket class and placement for (round, roster).
func resolveWeek(rows []sleeper.Matchup, season *model.Season, week int, rosters map[int]model.RosterEntry, idx *bracketIndex, round int) []model.Matchup {
	pairs := make(map[int][]sleeper.Matchup)
	for _, row := range rows {
		if row.MatchupID == nil {
			continue
		}
		pairs[*row.MatchupID] = append(pairs[*row.MatchupID], row)
	}

	out := make([]model.Matchup, 0, len(rows))
	for matchupID, pair := range pairs {
		if len(pair) != 2 {
			continue
		}
		a, b := pair[0], pair[1]
		out = appendSide(out, season, week, matchupID, a, b, rosters, idx, round)
		out = appendSide(out, season, week, matchupID, b, a, rosters, idx, round)
	}
	return out
}

func appendSide(out []model.Matchup, season *model.Season, week, matchupID int, side, opponent sleeper.Matchup, rosters map[int]model.RosterEntry, idx *bracketIndex, round int) []model.Matchup {
	team, ok := rosters[side.RosterID]
	if !ok {
		return out
	}
	opp, ok := rosters[opponent.RosterID]
	if !ok {
		return out
	}

	win, tie := scoreSide(side.Points, opponent.Points)
	m := model.Matchup{
		SeasonID:        season.ID,
		LeagueID:        season.LeagueID,
		Week:            week,
		MatchupID:       matchupID,
		TeamID:          team.TeamID,
		OpponentTeamID:  opp.TeamID,
		OwnerID:         team.OwnerID,
		OpponentOwnerID: opp.OwnerID,
		PointsFor:       side.Points,
		PointsAgainst:   opponent.Points,
		Win:             win,
		Tie:             tie,
	}

	if idx != nil {
		if slot, ok := idx.lookup(round, side.RosterID); ok {
			m.Playoff = slot.class == classPlayoff
			m.Consolation = slot.class == classConsolation
			m.Championship = slot.class == classPlayoff && slot.placement > 0 && slot.placement <= 2
			m.ToiletBowl = slot.class == classConsolation && slot.placement >= idx.totalTeams-1
		}
	}

	return append(out, m)
}

// buildRegularSeasonMatchups walks weeks from the season's start week up to,
// but not including, the playoff start week. An empty week means the season
// ended early or the remote has nothing more, so the loop stops there.
func (c *controller) buildRegularSeasonMatchups(season *model.Season, rosters map[int]model.RosterEntry) ([]model.Matchup, error) {
	start := season.StartWeek
	if start < 1 {
		start = 1
	}

	out := make([]model.Matchup, 0, 32)
	for week := start; week < season.PlayoffWeekStart; week++ {
		rows, err := c.sleeper.GetMatchups(season.ID, week)
		if err != nil {
			return nil, fmt.Errorf("error loading matchups for week %d: %w", week, err)
		}
		if len(rows) == 0 {
			break
		}
		out = append(out, resolveWeek(rows, season, week, rosters, nil, 0)...)
	}
	return out, nil
}

// buildPostseasonMatchups processes bracket rounds one week at a time
// starting at the playoff start week. There is no fixed round count: the
// remote returning no rows for a week is the termination signal. It also
// returns the final roster id -> placement ranking derived from the
// brackets.
func (c *controller) buildPostseasonMatchups(season *model.Season, rosters map[int]model.RosterEntry) ([]model.Matchup, map[int]int, error) {
	winners, err := c.sleeper.GetWinnersBracket(season.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading winners bracket: %w", err)
	}
	losers, err := c.sleeper.GetLosersBracket(season.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading losers bracket: %w", err)
	}
	idx := buildBracketIndex(winners, losers, season.TotalRosters)

	out := make([]model.Matchup, 0, 16)
	week := season.PlayoffWeekStart
	for round := 1; ; round++ {
		rows, err := c.sleeper.GetMatchups(season.ID, week)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading matchups for week %d: %w", week, err)
		}
		if len(rows) == 0 {
			break
		}
		out = append(out, resolveWeek(rows, season, week, rosters, idx, round)...)
		week++
	}
	return out, idx.finalPlacements(), nil
}
