package controller

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
)

// buildSeason assembles one season's full record set from remote data:
// the season row itself, divisions, users, teams, regular and postseason
// matchups, and draft metadata. Nothing is committed here; the resolver
// stages every season and commits once.
func (c *controller) buildSeason(ctx context.Context, detail *sleeper.League) (*model.SeasonRecord, error) {
	year, err := strconv.Atoi(detail.Season)
	if err != nil {
		return nil, fmt.Errorf("season %s has unparseable year %q: %w", detail.LeagueID, detail.Season, err)
	}

	season := model.Season{
		ID:               detail.LeagueID,
		Name:             detail.Name,
		Year:             year,
		Status:           detail.Status,
		TotalRosters:     detail.TotalRosters,
		StartWeek:        detail.Settings.StartWeek,
		PlayoffWeekStart: detail.Settings.PlayoffWeekStart,
		PlayoffTeams:     detail.Settings.PlayoffTeams,
		ReserveSlots:     detail.Settings.ReserveSlots,
		TaxiSlots:        detail.Settings.TaxiSlots,
		Scoring:          detail.ScoringSettings,
		RosterPositions:  countPositions(detail.RosterPositions),
		DraftID:          detail.DraftID,
	}
	if detail.HasPrevious() {
		season.PreviousSeasonID = detail.PreviousLeagueID
	}

	rec := &model.SeasonRecord{
		Season:    season,
		Divisions: parseDivisions(detail.LeagueID, detail.Metadata),
	}

	users, members, err := c.syncUsers(ctx, detail.LeagueID)
	if err != nil {
		return nil, err
	}
	rec.Users = users

	teams, rosterMap, err := c.buildTeams(&rec.Season, members)
	if err != nil {
		return nil, err
	}
	rec.Teams = teams

	rec.Matchups, err = c.buildRegularSeasonMatchups(&rec.Season, rosterMap)
	if err != nil {
		return nil, err
	}

	if c.postseasonComplete(&rec.Season) {
		post, placements, err := c.buildPostseasonMatchups(&rec.Season, rosterMap)
		if err != nil {
			return nil, err
		}
		rec.Matchups = append(rec.Matchups, post...)
		applyPlacements(rec.Teams, rosterMap, placements)
	}

	rec.Transactions, err = c.buildTransactions(&rec.Season, rosterMap, lastMatchupWeek(rec.Matchups))
	if err != nil {
		return nil, err
	}

	if season.DraftID != "" {
		rec.Draft, rec.Picks, err = c.buildDraft(season.ID, season.DraftID)
		if err != nil {
			return nil, err
		}
	}

	c.log.Info().
		Str("season", season.ID).
		Int("year", season.Year).
		Int("teams", len(rec.Teams)).
		Int("matchups", len(rec.Matchups)).
		Int("transactions", len(rec.Transactions)).
		Msg("season staged")
	return rec, nil
}

// postseasonComplete gates bracket processing: the remote serves bracket
// data worth ingesting once the season is over.
func (c *controller) postseasonComplete(season *model.Season) bool {
	if season.Status == "complete" {
		return true
	}
	return season.Year < c.clock.Now().Year()
}

var divisionKey = regexp.MustCompile(`^division_(\d+)$`)

// parseDivisions extracts division labels from the league metadata block.
// The block interleaves `division_<n>` name keys with `division_<n>_avatar`
// siblings; only the name keys produce divisions.
func parseDivisions(seasonID string, metadata map[string]string) []model.Division {
	divisions := make([]model.Division, 0, 2)
	for key, name := range metadata {
		m := divisionKey.FindStringSubmatch(key)
		if m == nil || name == "" {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		divisions = append(divisions, model.Division{
			SeasonID: seasonID,
			Number:   number,
			Name:     name,
		})
	}
	return divisions
}

// countPositions collapses the remote's roster-shape list (one entry per
// slot) into counts per position label.
func countPositions(positions []string) map[string]int {
	counts := make(map[string]int, len(positions))
	for _, pos := range positions {
		counts[pos]++
	}
	return counts
}

func applyPlacements(teams []model.Team, rosterMap map[int]model.RosterEntry, placements map[int]int) {
	byID := make(map[string]int, len(teams))
	for i := range teams {
		byID[teams[i].ID] = i
	}
	for rosterID, place := range placements {
		entry, ok := rosterMap[rosterID]
		if !ok {
			continue
		}
		if i, ok := byID[entry.TeamID]; ok {
			teams[i].Placement = place
		}
	}
}

func (c *controller) buildDraft(seasonID, draftID string) (*model.Draft, []model.DraftPick, error) {
	detail, err := c.sleeper.GetDraft(draftID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading draft %s: %w", draftID, err)
	}
	if detail == nil {
		return nil, nil, nil
	}

	year, _ := strconv.Atoi(detail.Season)
	draft := &model.Draft{
		ID:          detail.DraftID,
		SeasonID:    seasonID,
		Status:      detail.Status,
		Type:        detail.Type,
		Year:        year,
		Rounds:      detail.Settings.Rounds,
		PickTimer:   detail.Settings.PickTimer,
		ScoringType: detail.Metadata["scoring_type"],
	}
	if detail.StartTime > 0 {
		draft.StartTime = time.UnixMilli(detail.StartTime).UTC()
	}

	rawPicks, err := c.sleeper.GetDraftPicks(draftID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading picks for draft %s: %w", draftID, err)
	}
	picks := make([]model.DraftPick, 0, len(rawPicks))
	for _, p := range rawPicks {
		picks = append(picks, model.DraftPick{
			DraftID:  detail.DraftID,
			TeamID:   model.TeamID(seasonID, p.RosterID),
			PlayerID: p.PlayerID,
			Round:    p.Round,
			PickNum:  p.PickNo,
			Slot:     p.DraftSlot,
			Keeper:   p.IsKeeper,
		})
	}
	return draft, picks, nil
}
