package model

import "fmt"

// Team is one roster for one season. The ID is derived from the season id
// and the remote roster id so that re-ingesting a season maps onto the same
// rows instead of minting new ones.
type Team struct {
	ID            string
	SeasonID      string
	OwnerID       string
	Name          string
	Year          int
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Moves         int
	Commissioner  bool
	Division      int // 0 when the season has no divisions
	Placement     int // 0 until the postseason is resolved
	Players       []string
}

// TeamID builds the deterministic composite team id.
func TeamID(seasonID string, rosterID int) string {
	return fmt.Sprintf("%s-%d", seasonID, rosterID)
}

// RosterEntry links a remote roster id to the internal team and its owner.
// Matchup rows reference opponents only by roster id, so every season's
// matchup processing depends on this map being complete first.
type RosterEntry struct {
	TeamID  string
	OwnerID string
}

// Matchup is one team's result in one week. Every real-world matchup
// produces two of these, one per side, which keeps per-team queries
// symmetric at the cost of duplicating the pairing.
type Matchup struct {
	SeasonID        string
	LeagueID        int32
	Week            int
	MatchupID       int
	TeamID          string
	OpponentTeamID  string
	OwnerID         string
	OpponentOwnerID string
	PointsFor       float64
	PointsAgainst   float64
	Win             bool
	Tie             bool
	Playoff         bool
	Consolation     bool
	Championship    bool
	ToiletBowl      bool
}
