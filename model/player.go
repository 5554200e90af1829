package model

// Player is one entry in the league-wide player catalog, synced periodically
// from the remote system. Teams reference players through the team_players
// join; nothing in the ingestion pipeline depends on catalog details beyond
// the id.
type Player struct {
	ID           string
	FirstName    string
	LastName     string
	Position     string
	NFLTeam      string
	Number       int
	Age          int
	Status       string
	YearsExp     int
	Height       string
	Weight       string
	InjuryStatus string
}
