package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
	"github.com/levon-fischer/FantasyFieldhouse/testutils"
	"github.com/rs/zerolog"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()
	code := m.Run()
	os.Exit(code)
}

// newTestController returns a controller backed by the shared test database
// and a fake sleeper server. Callers must call close when done.
func newTestController(t *testing.T) (C, func()) {
	t.Helper()
	fakeSleeper := testutils.NewFakeSleeperServer()
	ctrl, err := New(testDB.Clock, sleeper.NewForTest(fakeSleeper.URL()), testDB.DB, zerolog.Nop())
	if err != nil {
		fakeSleeper.Close()
		t.Fatalf("error creating controller: %v", err)
	}
	return ctrl, fakeSleeper.Close
}

func TestResolveLeagueHistory(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	// Resolving the oldest season first creates the league with just that
	// season in it.
	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDA); err != nil {
		t.Fatalf("error resolving season A: %v", err)
	}

	leagues, err := ctrl.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("error listing leagues: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("expected 1 league, got %d", len(leagues))
	}
	if leagues[0].Name != "The Gridiron Gang" {
		t.Errorf("wrong league name: %s", leagues[0].Name)
	}
	leagueID := leagues[0].ID

	league, err := ctrl.GetLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("error loading league: %v", err)
	}
	if len(league.Seasons) != 1 || league.Seasons[0].ID != testutils.SeasonIDA {
		t.Fatalf("expected only season A, got: %v", league.Seasons)
	}

	// Resolving the newest season walks the chain back, reconnects with the
	// already-ingested season A, and attaches B and C to the same league
	// instead of creating a second one.
	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error resolving season C: %v", err)
	}

	leagues, err = ctrl.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("error listing leagues: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("expected still 1 league, got %d", len(leagues))
	}

	league, err = ctrl.GetLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("error loading league: %v", err)
	}
	if len(league.Seasons) != 3 {
		t.Fatalf("expected 3 seasons, got %d", len(league.Seasons))
	}
	// Seasons come back ordered by year.
	for i, expected := range []string{testutils.SeasonIDA, testutils.SeasonIDB, testutils.SeasonIDC} {
		if league.Seasons[i].ID != expected {
			t.Errorf("season %d - expected: %s, got: %s", i, expected, league.Seasons[i].ID)
		}
		if league.Seasons[i].LeagueID != leagueID {
			t.Errorf("season %d not attached to league %d", i, leagueID)
		}
	}

	c := league.Seasons[2]
	if c.Year != 2024 || c.Status != "complete" || c.TotalRosters != 12 {
		t.Errorf("season C core fields wrong: %+v", c)
	}
	if c.PreviousSeasonID != testutils.SeasonIDB {
		t.Errorf("season C previous - expected: %s, got: %s", testutils.SeasonIDB, c.PreviousSeasonID)
	}
	if c.DraftID != testutils.DraftIDC {
		t.Errorf("season C draft - expected: %s, got: %s", testutils.DraftIDC, c.DraftID)
	}
	if c.Scoring["rec"] != 0.5 || c.Scoring["pass_int"] != -1.0 {
		t.Errorf("season C scoring wrong: %v", c.Scoring)
	}
	if c.RosterPositions["BN"] != 3 || c.RosterPositions["RB"] != 2 {
		t.Errorf("season C roster positions wrong: %v", c.RosterPositions)
	}
	if league.Seasons[0].PreviousSeasonID != "" {
		t.Errorf("season A is the chain root, previous should be empty: %s", league.Seasons[0].PreviousSeasonID)
	}

	// Resolving any season of an ingested lineage again is a no-op.
	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error re-resolving season C: %v", err)
	}
	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDB); err != nil {
		t.Fatalf("error re-resolving season B: %v", err)
	}
	leagues, err = ctrl.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("error listing leagues: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("re-resolving must not create leagues, got %d", len(leagues))
	}
}

func TestResolveLeagueHistory_standings(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error resolving season C: %v", err)
	}

	teams, err := ctrl.GetSeasonStandings(ctx, testutils.SeasonIDC)
	if err != nil {
		t.Fatalf("error loading standings: %v", err)
	}
	// 13 remote rosters, but the ownerless placeholder is skipped.
	if len(teams) != 12 {
		t.Fatalf("expected 12 teams, got %d", len(teams))
	}

	byID := make(map[string]model.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}

	placements := map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 6: 5, 5: 6, 7: 7, 8: 8, 9: 9, 10: 10, 11: 11, 12: 12}
	for rosterID, expected := range placements {
		team, ok := byID[model.TeamID(testutils.SeasonIDC, rosterID)]
		if !ok {
			t.Fatalf("no team for roster %d", rosterID)
		}
		if team.Placement != expected {
			t.Errorf("roster %d placement - expected: %d, got: %d", rosterID, expected, team.Placement)
		}
	}

	champ := byID[model.TeamID(testutils.SeasonIDC, 1)]
	if champ.Name != "Commish Crew" || !champ.Commissioner {
		t.Errorf("champion team wrong: %+v", champ)
	}
	if champ.Division != 1 || champ.PointsFor != 242.92 {
		t.Errorf("champion division/points wrong: %+v", champ)
	}
	// Roster 12's owner never set a team name.
	if team := byID[model.TeamID(testutils.SeasonIDC, 12)]; team.Name != "Unknown" {
		t.Errorf("unnamed team - expected: Unknown, got: %s", team.Name)
	}
}

func TestResolveLeagueHistory_matchups(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error resolving season C: %v", err)
	}

	// Regular season week with a tie and an unplayed 0-0 pairing.
	week2, err := ctrl.GetSeasonResults(ctx, testutils.SeasonIDC, 2)
	if err != nil {
		t.Fatalf("error loading week 2: %v", err)
	}
	if len(week2) != 12 {
		t.Fatalf("expected 12 rows in week 2, got %d", len(week2))
	}
	tied := findMatchup(t, week2, model.TeamID(testutils.SeasonIDC, 9))
	if !tied.Tie || tied.Win {
		t.Errorf("expected a tie for roster 9: %+v", tied)
	}
	unplayed := findMatchup(t, week2, model.TeamID(testutils.SeasonIDC, 11))
	if unplayed.Win || unplayed.Tie {
		t.Errorf("a 0-0 week is a loss for both sides, got: %+v", unplayed)
	}
	if tied.Playoff || tied.Consolation {
		t.Error("regular season rows must not carry bracket flags")
	}

	// Championship week.
	week5, err := ctrl.GetSeasonResults(ctx, testutils.SeasonIDC, 5)
	if err != nil {
		t.Fatalf("error loading week 5: %v", err)
	}
	if len(week5) != 8 {
		t.Fatalf("expected 8 rows in week 5, got %d", len(week5))
	}
	champ := findMatchup(t, week5, model.TeamID(testutils.SeasonIDC, 1))
	if !champ.Win || !champ.Playoff || !champ.Championship {
		t.Errorf("championship winner flags wrong: %+v", champ)
	}

	// Committed rows carry the league id assigned when the lineage was
	// saved, even though matchups are staged before the league exists.
	s, err := testDB.DB.GetSeason(ctx, testutils.SeasonIDC)
	if err != nil {
		t.Fatalf("error loading season: %v", err)
	}
	if s.LeagueID == 0 || champ.LeagueID != s.LeagueID {
		t.Errorf("matchup league - expected: %d, got: %d", s.LeagueID, champ.LeagueID)
	}
	runnerUp := findMatchup(t, week5, model.TeamID(testutils.SeasonIDC, 2))
	if runnerUp.Win || !runnerUp.Championship {
		t.Errorf("championship loser flags wrong: %+v", runnerUp)
	}
	third := findMatchup(t, week5, model.TeamID(testutils.SeasonIDC, 3))
	if !third.Playoff || third.Championship {
		t.Errorf("third place match flags wrong: %+v", third)
	}

	// The last place match resolves in round 2 of the losers bracket.
	week4, err := ctrl.GetSeasonResults(ctx, testutils.SeasonIDC, 4)
	if err != nil {
		t.Fatalf("error loading week 4: %v", err)
	}
	for _, rosterID := range []int{11, 12} {
		row := findMatchup(t, week4, model.TeamID(testutils.SeasonIDC, rosterID))
		if !row.Consolation || !row.ToiletBowl {
			t.Errorf("roster %d toilet bowl flags wrong: %+v", rosterID, row)
		}
		if row.Playoff || row.Championship {
			t.Errorf("roster %d must not carry playoff flags: %+v", rosterID, row)
		}
	}
}

func TestResolveLeagueHistory_transactions(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error resolving season C: %v", err)
	}

	// Week 1 holds a single waiver claim.
	week1, err := ctrl.GetSeasonTransactions(ctx, testutils.SeasonIDC, 1)
	if err != nil {
		t.Fatalf("error loading week 1 transactions: %v", err)
	}
	if len(week1) != 1 {
		t.Fatalf("expected 1 transaction in week 1, got %d", len(week1))
	}
	claim := week1[0]
	if claim.Type != "waiver" || claim.Status != "complete" || claim.CreatorID != "300000000000000003" {
		t.Errorf("claim fields wrong: %+v", claim)
	}
	if len(claim.Items) != 2 {
		t.Fatalf("expected 2 claim items, got %d: %v", len(claim.Items), claim.Items)
	}
	add := findItem(t, claim.Items, "add", "6794")
	if add.TeamID != model.TeamID(testutils.SeasonIDC, 3) || add.Bid != 15 || add.WaiverOrder != 2 {
		t.Errorf("claim add item wrong: %+v", add)
	}
	findItem(t, claim.Items, "drop", "7564")

	// Week 2 holds a trade and a free agent move by the ownerless roster.
	week2, err := ctrl.GetSeasonTransactions(ctx, testutils.SeasonIDC, 2)
	if err != nil {
		t.Fatalf("error loading week 2 transactions: %v", err)
	}
	if len(week2) != 2 {
		t.Fatalf("expected 2 transactions in week 2, got %d", len(week2))
	}
	trade := week2[0]
	if trade.Type != "trade" || len(trade.Items) != 4 {
		t.Errorf("trade wrong: %+v", trade)
	}
	if item := findItem(t, trade.Items, "add", "4046"); item.TeamID != model.TeamID(testutils.SeasonIDC, 2) {
		t.Errorf("traded player landed on the wrong team: %+v", item)
	}
	if orphan := week2[1]; orphan.Type != "free_agent" || len(orphan.Items) != 0 {
		t.Errorf("ownerless roster moves must carry no items: %+v", orphan)
	}

	// Weeks without any activity come back empty.
	week5, err := ctrl.GetSeasonTransactions(ctx, testutils.SeasonIDC, 5)
	if err != nil {
		t.Fatalf("error loading week 5 transactions: %v", err)
	}
	if len(week5) != 0 {
		t.Errorf("expected no transactions in week 5, got %d", len(week5))
	}
}

func TestResolveLeagueHistory_shadowUsers(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	if err := ctrl.ResolveLeagueHistory(ctx, testutils.SeasonIDC); err != nil {
		t.Fatalf("error resolving season C: %v", err)
	}

	u, err := testDB.DB.GetUser(ctx, "300000000000000002")
	if err != nil {
		t.Fatalf("error loading shadow user: %v", err)
	}
	if u.Username != "gridirongreg" {
		t.Errorf("wrong username: %s", u.Username)
	}
	if u.Registered || u.Email != "" || u.PasswordHash != "" {
		t.Errorf("shadow user must not look registered: %+v", u)
	}
}

func TestResolveLeagueHistory_unknownSeason(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	// A season id sleeper has never heard of resolves to nothing, quietly.
	const id = "111111111111111111"
	if err := ctrl.ResolveLeagueHistory(ctx, id); err != nil {
		t.Fatalf("unknown season should not be an error: %v", err)
	}
	if _, err := testDB.DB.GetSeason(ctx, id); !errors.Is(err, db.ErrSeasonNotFound) {
		t.Errorf("expected ErrSeasonNotFound, got: %v", err)
	}
}

func TestImportLeaguesForUser(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()
	ctx := context.Background()

	if err := ctrl.ImportLeaguesForUser(ctx, testutils.SleeperUserID); err != nil {
		t.Fatalf("error importing leagues: %v", err)
	}
	if _, err := testDB.DB.GetSeason(ctx, testutils.SeasonIDC); err != nil {
		t.Errorf("season C should be ingested after import: %v", err)
	}

	// A user with no leagues imports nothing and reports no error.
	if err := ctrl.ImportLeaguesForUser(ctx, "42"); err != nil {
		t.Errorf("user with no leagues should not be an error: %v", err)
	}
}

func TestUpdatePlayers(t *testing.T) {
	ctrl, done := newTestController(t)
	defer done()

	if err := ctrl.UpdatePlayers(context.Background()); err != nil {
		t.Fatalf("error updating players: %v", err)
	}
}
