package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
)

// maxLineageDepth caps the backward walk. The remote contract does not
// promise acyclic previous-season chains, and no real league is decades
// deep.
const maxLineageDepth = 25

var (
	ErrLineageTooDeep = errors.New("previous season chain exceeds depth limit")
	ErrLineageCycle   = errors.New("previous season chain contains a cycle")
)

// ResolveLeagueHistory walks the previous-season chain backward from
// seasonID, accumulating undiscovered seasons on a pending stack. If the
// chain reconnects with a season already ingested, every new season attaches
// to that season's league; otherwise a new League is created, named after
// the newest season. All staged rows are committed in one transaction.
func (c *controller) ResolveLeagueHistory(ctx context.Context, seasonID string) error {
	// Idempotence entry point: a known season means this lineage is already
	// fully linked.
	if _, err := c.db.GetSeason(ctx, seasonID); err == nil {
		c.log.Debug().Str("season", seasonID).Msg("season already ingested")
		return nil
	} else if !errors.Is(err, db.ErrSeasonNotFound) {
		return fmt.Errorf("error checking for season %s: %w", seasonID, err)
	}

	// pending holds fetched seasons newest-first; draining it back-to-front
	// ingests oldest-first.
	pending := make([]*sleeper.League, 0, 4)
	visited := make(map[string]bool)
	var leagueID int32
	foundLeague := false

	id := seasonID
	for {
		if visited[id] {
			return fmt.Errorf("%w: season %s seen twice", ErrLineageCycle, id)
		}
		if len(pending) >= maxLineageDepth {
			return fmt.Errorf("%w: gave up at season %s", ErrLineageTooDeep, id)
		}
		visited[id] = true

		detail, err := c.sleeper.GetLeague(id)
		if err != nil {
			return fmt.Errorf("error fetching season %s: %w", id, err)
		}
		if detail == nil {
			if len(pending) == 0 {
				// Nothing to ingest at all; not an error, there is just no
				// such season.
				c.log.Warn().Str("season", seasonID).Msg("season does not exist on sleeper")
				return nil
			}
			// A season mid-chain was deleted or is unavailable. The chain
			// cannot be resolved further back; ingest what was collected
			// and root the league at the deepest season fetched.
			c.log.Warn().Str("season", id).Msg("previous season missing, truncating lineage")
			break
		}

		pending = append(pending, detail)
		if !detail.HasPrevious() {
			break
		}

		prevID := detail.PreviousLeagueID
		prev, err := c.db.GetSeason(ctx, prevID)
		if err == nil {
			// The chain reconnected with already-ingested history.
			leagueID = prev.LeagueID
			foundLeague = true
			c.log.Info().
				Str("season", prevID).
				Int32("league", leagueID).
				Msg("lineage reconnected with known league")
			break
		}
		if !errors.Is(err, db.ErrSeasonNotFound) {
			return fmt.Errorf("error checking for season %s: %w", prevID, err)
		}
		id = prevID
	}

	history := &model.LeagueHistory{}
	if foundLeague {
		history.LeagueID = leagueID
	} else {
		history.League = &model.League{Name: pending[0].Name}
	}

	for i := len(pending) - 1; i >= 0; i-- {
		rec, err := c.buildSeason(ctx, pending[i])
		if err != nil {
			return fmt.Errorf("error building season %s: %w", pending[i].LeagueID, err)
		}
		history.Seasons = append(history.Seasons, *rec)
	}

	if err := c.db.SaveLeagueHistory(ctx, history); err != nil {
		return fmt.Errorf("error committing history for season %s: %w", seasonID, err)
	}

	c.log.Info().
		Str("season", seasonID).
		Int("seasons", len(history.Seasons)).
		Bool("newLeague", history.League != nil).
		Msg("league history resolved")
	return nil
}

// ImportLeaguesForUser resolves every league the user is in for the current
// year. Individual league failures are reported but do not stop the other
// leagues from importing.
func (c *controller) ImportLeaguesForUser(ctx context.Context, userID string) error {
	year := strconv.Itoa(c.clock.Now().Year())
	leagues, err := c.sleeper.GetLeaguesForUser(userID, year)
	if err != nil {
		return fmt.Errorf("error loading leagues for user %s: %w", userID, err)
	}

	var errs []error
	for _, l := range leagues {
		if err := c.ResolveLeagueHistory(ctx, l.LeagueID); err != nil {
			c.log.Err(err).Str("season", l.LeagueID).Str("user", userID).Msg("league import failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
