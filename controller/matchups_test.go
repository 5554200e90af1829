package controller

import (
	"fmt"
	"testing"

	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
)

func TestScoreSide(t *testing.T) {
	tests := []struct {
		name          string
		pointsFor     float64
		pointsAgainst float64
		win           bool
		tie           bool
	}{
		{name: "win", pointsFor: 110.5, pointsAgainst: 98.2, win: true},
		{name: "loss", pointsFor: 98.2, pointsAgainst: 110.5},
		{name: "tie", pointsFor: 95.5, pointsAgainst: 95.5, tie: true},
		{name: "win over empty lineup", pointsFor: 88.1, pointsAgainst: 0, win: true},
		{name: "empty lineup never wins", pointsFor: 0, pointsAgainst: 0},
		{name: "empty lineup never ties", pointsFor: 0, pointsAgainst: 70.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			win, tie := scoreSide(tc.pointsFor, tc.pointsAgainst)
			if win != tc.win {
				t.Errorf("win - expected: %t, got: %t", tc.win, win)
			}
			if tie != tc.tie {
				t.Errorf("tie - expected: %t, got: %t", tc.tie, tie)
			}
		})
	}
}

func testRosterMap(seasonID string, rosterIDs ...int) map[int]model.RosterEntry {
	m := make(map[int]model.RosterEntry, len(rosterIDs))
	for _, id := range rosterIDs {
		m[id] = model.RosterEntry{
			TeamID:  model.TeamID(seasonID, id),
			OwnerID: fmt.Sprintf("owner-%d", id),
		}
	}
	return m
}

func findMatchup(t *testing.T, matchups []model.Matchup, teamID string) *model.Matchup {
	t.Helper()
	for i := range matchups {
		if matchups[i].TeamID == teamID {
			return &matchups[i]
		}
	}
	t.Fatalf("no matchup row for team %s", teamID)
	return nil
}

func TestResolveWeek(t *testing.T) {
	season := &model.Season{ID: "1000", LeagueID: 7}
	rosters := testRosterMap("1000", 1, 2, 3, 4)

	rows := []sleeper.Matchup{
		{RosterID: 1, MatchupID: ip(1), Points: 101.5},
		{RosterID: 2, MatchupID: ip(1), Points: 99.02},
		{RosterID: 3, MatchupID: nil, Points: 0},    // bye
		{RosterID: 4, MatchupID: ip(2), Points: 88}, // opponent row missing
	}

	out := resolveWeek(rows, season, 4, rosters, nil, 0)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(out), out)
	}

	winner := findMatchup(t, out, model.TeamID("1000", 1))
	if !winner.Win || winner.Tie {
		t.Errorf("expected a plain win, got win=%t tie=%t", winner.Win, winner.Tie)
	}
	if winner.OpponentTeamID != model.TeamID("1000", 2) {
		t.Errorf("wrong opponent: %s", winner.OpponentTeamID)
	}
	if winner.PointsFor != 101.5 || winner.PointsAgainst != 99.02 {
		t.Errorf("wrong points: %f/%f", winner.PointsFor, winner.PointsAgainst)
	}
	if winner.Week != 4 || winner.MatchupID != 1 {
		t.Errorf("wrong week/matchup: %d/%d", winner.Week, winner.MatchupID)
	}
	if winner.SeasonID != "1000" || winner.LeagueID != 7 {
		t.Errorf("wrong season/league: %s/%d", winner.SeasonID, winner.LeagueID)
	}
	if winner.Playoff || winner.Consolation || winner.Championship || winner.ToiletBowl {
		t.Error("regular season rows must carry no postseason flags")
	}

	loser := findMatchup(t, out, model.TeamID("1000", 2))
	if loser.Win || loser.Tie {
		t.Errorf("expected a plain loss, got win=%t tie=%t", loser.Win, loser.Tie)
	}
	if loser.PointsFor != 99.02 || loser.PointsAgainst != 101.5 {
		t.Errorf("points not mirrored: %f/%f", loser.PointsFor, loser.PointsAgainst)
	}
}

func TestResolveWeek_postseasonFlags(t *testing.T) {
	season := &model.Season{ID: "2000", TotalRosters: 4}
	rosters := testRosterMap("2000", 1, 2, 3, 4)

	winners := []sleeper.BracketMatch{match(1, 1, 1, 2, 1, 2, ip(1))}
	losers := []sleeper.BracketMatch{match(1, 1, 3, 4, 3, 4, ip(1))}
	idx := buildBracketIndex(winners, losers, season.TotalRosters)

	rows := []sleeper.Matchup{
		{RosterID: 1, MatchupID: ip(1), Points: 120.3},
		{RosterID: 2, MatchupID: ip(1), Points: 100.1},
		{RosterID: 3, MatchupID: ip(2), Points: 90.6},
		{RosterID: 4, MatchupID: ip(2), Points: 85.2},
	}

	out := resolveWeek(rows, season, 15, rosters, idx, 1)
	if len(out) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(out))
	}

	champ := findMatchup(t, out, model.TeamID("2000", 1))
	if !champ.Playoff || !champ.Championship {
		t.Errorf("championship winner flags wrong: %+v", champ)
	}
	runnerUp := findMatchup(t, out, model.TeamID("2000", 2))
	if !runnerUp.Playoff || !runnerUp.Championship {
		t.Errorf("championship loser flags wrong: %+v", runnerUp)
	}
	if runnerUp.Win {
		t.Error("championship loser must not be a win")
	}

	// The consolation final of a 4-team league decides places 3 and 4, which
	// are the bottom two, so both sides are the toilet bowl.
	for _, rosterID := range []int{3, 4} {
		row := findMatchup(t, out, model.TeamID("2000", rosterID))
		if !row.Consolation || !row.ToiletBowl {
			t.Errorf("roster %d flags wrong: %+v", rosterID, row)
		}
		if row.Playoff || row.Championship {
			t.Errorf("roster %d must not carry playoff flags: %+v", rosterID, row)
		}
	}
}
