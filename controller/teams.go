package controller

import (
	"fmt"

	"github.com/levon-fischer/FantasyFieldhouse/model"
)

// Display name used when a roster's owner never set a team name.
const unknownTeamName = "Unknown"

// buildTeams maps a season's remote rosters onto Team rows and builds the
// roster map handed to matchup processing. Rosters with no owner are
// placeholders in real data and are skipped entirely.
func (c *controller) buildTeams(season *model.Season, members map[string]memberInfo) ([]model.Team, map[int]model.RosterEntry, error) {
	rosters, err := c.sleeper.GetRosters(season.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading rosters for season %s: %w", season.ID, err)
	}

	teams := make([]model.Team, 0, len(rosters))
	rosterMap := make(map[int]model.RosterEntry, len(rosters))
	for _, r := range rosters {
		if r.OwnerID == "" {
			c.log.Debug().Str("season", season.ID).Int("roster", r.RosterID).Msg("skipping ownerless roster")
			continue
		}

		info := members[r.OwnerID]
		name := info.teamName
		if name == "" {
			name = unknownTeamName
		}

		id := model.TeamID(season.ID, r.RosterID)
		teams = append(teams, model.Team{
			ID:            id,
			SeasonID:      season.ID,
			OwnerID:       r.OwnerID,
			Name:          name,
			Year:          season.Year,
			Wins:          r.Settings.Wins,
			Losses:        r.Settings.Losses,
			Ties:          r.Settings.Ties,
			PointsFor:     r.Settings.PointsFor(),
			PointsAgainst: r.Settings.PointsAgainst(),
			Moves:         r.Settings.TotalMoves,
			Commissioner:  info.commissioner,
			Division:      r.Settings.Division,
			Players:       r.Players,
		})
		rosterMap[r.RosterID] = model.RosterEntry{TeamID: id, OwnerID: r.OwnerID}
	}
	return teams, rosterMap, nil
}
