package sleeper

// Wire types for the subset of the Sleeper API this app reads. Field names
// follow the remote JSON; anything the remote may omit or null out is a
// pointer.

type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type League struct {
	LeagueID         string             `json:"league_id"`
	Name             string             `json:"name"`
	Status           string             `json:"status"`
	Season           string             `json:"season"`
	TotalRosters     int                `json:"total_rosters"`
	PreviousLeagueID string             `json:"previous_league_id"`
	DraftID          string             `json:"draft_id"`
	Settings         LeagueSettings     `json:"settings"`
	ScoringSettings  map[string]float64 `json:"scoring_settings"`
	RosterPositions  []string           `json:"roster_positions"`
	Metadata         map[string]string  `json:"metadata"`
}

type LeagueSettings struct {
	StartWeek        int `json:"start_week"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	ReserveSlots     int `json:"reserve_slots"`
	TaxiSlots        int `json:"taxi_slots"`
	Divisions        int `json:"divisions"`
}

// HasPrevious reports whether the league points at a prior season. The
// remote uses both null and "0" for the end of the chain.
func (l *League) HasPrevious() bool {
	return l.PreviousLeagueID != "" && l.PreviousLeagueID != "0"
}

type Member struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	IsOwner     bool              `json:"is_owner"`
	Metadata    map[string]string `json:"metadata"`
}

// TeamName returns the member's team name from the metadata block, or ""
// when the owner never set one.
func (m *Member) TeamName() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata["team_name"]
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	Ties               int `json:"ties"`
	FPTS               int `json:"fpts"`
	FPTSDecimal        int `json:"fpts_decimal"`
	FPTSAgainst        int `json:"fpts_against"`
	FPTSAgainstDecimal int `json:"fpts_against_decimal"`
	TotalMoves         int `json:"total_moves"`
	Division           int `json:"division"`
}

// PointsFor assembles the fractional score the remote splits across two
// integer fields.
func (s *RosterSettings) PointsFor() float64 {
	return float64(s.FPTS) + float64(s.FPTSDecimal)/100
}

func (s *RosterSettings) PointsAgainst() float64 {
	return float64(s.FPTSAgainst) + float64(s.FPTSAgainstDecimal)/100
}

// Matchup is one team's row for one week. Rows sharing a MatchupID are the
// two sides of the same pairing; a nil MatchupID marks a bye.
type Matchup struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

// BracketMatch is one match in a winners or losers bracket. P is the final
// placement decided by the match and is only present on placement-final
// rounds.
type BracketMatch struct {
	Match  int  `json:"m"`
	Round  int  `json:"r"`
	Team1  *int `json:"t1"`
	Team2  *int `json:"t2"`
	Winner *int `json:"w"`
	Loser  *int `json:"l"`
	P      *int `json:"p"`
}

// Transaction is one roster move processed during a week: a trade, a
// waiver claim, or a free agent pickup. Adds and Drops map player id to
// the roster id gaining or losing the player.
type Transaction struct {
	TransactionID string               `json:"transaction_id"`
	Type          string               `json:"type"`
	Status        string               `json:"status"`
	Creator       string               `json:"creator"`
	Created       int64                `json:"created"`        // unix millis
	StatusUpdated int64                `json:"status_updated"` // unix millis
	RosterIDs     []int                `json:"roster_ids"`
	Adds          map[string]int       `json:"adds"`
	Drops         map[string]int       `json:"drops"`
	Settings      *TransactionSettings `json:"settings"`
}

// TransactionSettings carries the waiver details; nil on trades and free
// agent moves.
type TransactionSettings struct {
	WaiverBid int `json:"waiver_bid"`
	Seq       int `json:"seq"`
}

type Draft struct {
	DraftID   string            `json:"draft_id"`
	LeagueID  string            `json:"league_id"`
	Status    string            `json:"status"`
	Type      string            `json:"type"`
	Season    string            `json:"season"`
	StartTime int64             `json:"start_time"` // unix millis
	Settings  DraftSettings     `json:"settings"`
	Metadata  map[string]string `json:"metadata"`
}

type DraftSettings struct {
	Rounds    int `json:"rounds"`
	PickTimer int `json:"pick_timer"`
}

type DraftPick struct {
	Round     int    `json:"round"`
	PickNo    int    `json:"pick_no"`
	DraftSlot int    `json:"draft_slot"`
	RosterID  int    `json:"roster_id"`
	PlayerID  string `json:"player_id"`
	IsKeeper  bool   `json:"is_keeper"`
}

type sleeperPlayer struct {
	PlayerID     string   `json:"player_id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Positions    []string `json:"fantasy_positions"`
	Team         string   `json:"team"`
	Number       int      `json:"number"`
	Age          int      `json:"age"`
	Status       string   `json:"status"`
	YearsExp     int      `json:"years_exp"`
	Height       string   `json:"height"`
	Weight       string   `json:"weight"`
	InjuryStatus string   `json:"injury_status"`
}
