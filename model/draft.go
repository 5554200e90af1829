package model

import "time"

// Draft is the draft metadata for one season.
type Draft struct {
	ID          string
	SeasonID    string
	Status      string
	Type        string
	Year        int
	Rounds      int
	PickTimer   int
	ScoringType string
	StartTime   time.Time
}

// DraftPick is a single selection within a draft.
type DraftPick struct {
	DraftID  string
	TeamID   string
	PlayerID string
	Round    int
	PickNum  int
	Slot     int
	Keeper   bool
}
