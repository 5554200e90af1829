package controller

import "github.com/levon-fischer/FantasyFieldhouse/sleeper"

// The remote bracket endpoints return raw match records with no per-team
// placement summary. buildBracketIndex turns them into a lookup of
// (round, roster) so postseason matchup rows can be classified, and derives
// a full 1..N final ranking the remote never provides directly.

type bracketClass int

const (
	classPlayoff     bracketClass = iota // winners bracket
	classConsolation                     // losers bracket
)

type bracketKey struct {
	round    int
	rosterID int
}

type bracketSlot struct {
	class     bracketClass
	placement int // 0 unless this match finalizes the team's placement
}

type bracketIndex struct {
	slots      map[bracketKey]bracketSlot
	placements map[int]int // roster id -> final placement
	totalTeams int
}

func buildBracketIndex(winners, losers []sleeper.BracketMatch, totalTeams int) *bracketIndex {
	idx := &bracketIndex{
		slots:      make(map[bracketKey]bracketSlot),
		placements: make(map[int]int),
		totalTeams: totalTeams,
	}
	idx.addBracket(winners, classPlayoff, 0)
	// Losers bracket places sit below every playoff place, so offset them by
	// half the league.
	idx.addBracket(losers, classConsolation, totalTeams/2)
	return idx
}

func (idx *bracketIndex) addBracket(matches []sleeper.BracketMatch, class bracketClass, offset int) {
	for _, m := range matches {
		for _, team := range []*int{m.Team1, m.Team2} {
			if team == nil {
				continue
			}
			slot := bracketSlot{class: class}
			// A match with no p value is not placement-final; its
			// participants are resolved by a later round.
			if m.P != nil && m.Winner != nil && m.Loser != nil {
				switch *team {
				case *m.Winner:
					slot.placement = *m.P + offset
				case *m.Loser:
					// The losing side of a placement match finishes one
					// place behind the winner.
					slot.placement = *m.P + offset + 1
				}
			}
			idx.slots[bracketKey{round: m.Round, rosterID: *team}] = slot
			if slot.placement > 0 {
				idx.placements[*team] = slot.placement
			}
		}
	}
}

func (idx *bracketIndex) lookup(round, rosterID int) (bracketSlot, bool) {
	slot, ok := idx.slots[bracketKey{round: round, rosterID: rosterID}]
	return slot, ok
}

// finalPlacements returns the derived roster id -> placement ranking.
func (idx *bracketIndex) finalPlacements() map[int]int {
	return idx.placements
}
