package model

// League is the root aggregate for one league lineage. A league is created
// exactly once, the first time a season chain is ingested with no existing
// match, and every season discovered afterwards attaches to it.
type League struct {
	ID      int32
	Name    string
	Seasons []Season
}

// Season is one year of play for a league. The ID is the remote system's
// league id for that year and is used verbatim as the primary key.
type Season struct {
	ID               string
	LeagueID         int32 // 0 until the lineage is resolved
	Name             string
	Year             int
	Status           string
	TotalRosters     int
	StartWeek        int
	PlayoffWeekStart int
	PlayoffTeams     int
	ReserveSlots     int
	TaxiSlots        int
	Scoring          map[string]float64
	RosterPositions  map[string]int
	PreviousSeasonID string // empty at the root of the chain
	DraftID          string
}

// Division tags teams within a single season. The number is assigned by the
// remote system and referenced from roster records.
type Division struct {
	SeasonID string
	Number   int
	Name     string
}

// SeasonRecord is one season's fully staged row set, built by the season
// builder and not yet committed.
type SeasonRecord struct {
	Season       Season
	Divisions    []Division
	Users        []User
	Teams        []Team
	Matchups     []Matchup
	Transactions []Transaction
	Draft        *Draft
	Picks        []DraftPick
}

// LeagueHistory is the complete staged result of one league resolution.
// Either League is set (a brand new league, id assigned at commit) or
// LeagueID points at an already known league the chain reconnected with.
type LeagueHistory struct {
	League   *League
	LeagueID int32
	Seasons  []SeasonRecord
}
