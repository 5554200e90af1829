package controller

import (
	"fmt"
	"sort"
	"time"

	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
)

// buildTransactions collects the roster moves for every week the season
// produced matchups for. The remote indexes transactions by week the same
// way it indexes matchups, so the last matchup week bounds the walk.
func (c *controller) buildTransactions(season *model.Season, rosters map[int]model.RosterEntry, lastWeek int) ([]model.Transaction, error) {
	start := season.StartWeek
	if start < 1 {
		start = 1
	}

	out := make([]model.Transaction, 0, 32)
	for week := start; week <= lastWeek; week++ {
		rows, err := c.sleeper.GetTransactions(season.ID, week)
		if err != nil {
			return nil, fmt.Errorf("error loading transactions for week %d: %w", week, err)
		}
		for i := range rows {
			out = append(out, resolveTransaction(&rows[i], season.ID, week, rosters))
		}
	}
	return out, nil
}

// resolveTransaction maps one raw transaction onto internal rows. Adds and
// drops reference rosters by id; moves involving rosters missing from the
// roster map (ownerless placeholders) contribute no items.
func resolveTransaction(raw *sleeper.Transaction, seasonID string, week int, rosters map[int]model.RosterEntry) model.Transaction {
	t := model.Transaction{
		ID:        raw.TransactionID,
		SeasonID:  seasonID,
		Week:      week,
		Type:      raw.Type,
		Status:    raw.Status,
		CreatorID: raw.Creator,
	}
	if raw.Created > 0 {
		t.Created = time.UnixMilli(raw.Created).UTC()
	}
	if raw.StatusUpdated > 0 {
		t.Processed = time.UnixMilli(raw.StatusUpdated).UTC()
	}

	var waiverOrder, bid int
	if raw.Type == "waiver" && raw.Settings != nil {
		waiverOrder = raw.Settings.Seq
		bid = raw.Settings.WaiverBid
	}

	for _, playerID := range sortedKeys(raw.Adds) {
		entry, ok := rosters[raw.Adds[playerID]]
		if !ok {
			continue
		}
		t.Items = append(t.Items, model.TransactionItem{
			TransactionID: t.ID,
			TeamID:        entry.TeamID,
			PlayerID:      playerID,
			Action:        "add",
			WaiverOrder:   waiverOrder,
			Bid:           bid,
		})
	}
	for _, playerID := range sortedKeys(raw.Drops) {
		entry, ok := rosters[raw.Drops[playerID]]
		if !ok {
			continue
		}
		t.Items = append(t.Items, model.TransactionItem{
			TransactionID: t.ID,
			TeamID:        entry.TeamID,
			PlayerID:      playerID,
			Action:        "drop",
		})
	}
	return t
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lastMatchupWeek(matchups []model.Matchup) int {
	last := 0
	for i := range matchups {
		if matchups[i].Week > last {
			last = matchups[i].Week
		}
	}
	return last
}
