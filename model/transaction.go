package model

import "time"

// Transaction is one processed roster move within a season: a trade, a
// waiver claim, or a free agent add/drop. The id is the remote system's
// transaction id, taken verbatim.
type Transaction struct {
	ID        string
	SeasonID  string
	Week      int
	Type      string
	Status    string
	CreatorID string
	Created   time.Time
	Processed time.Time
	Items     []TransactionItem
}

// TransactionItem is a single player changing hands inside a transaction.
// Trades produce one item per player and side; claims produce an add and,
// when a player was cut to make room, a drop. WaiverOrder and Bid are only
// set on waiver adds.
type TransactionItem struct {
	TransactionID string
	TeamID        string
	PlayerID      string
	Action        string // "add" or "drop"
	WaiverOrder   int
	Bid           int
}
