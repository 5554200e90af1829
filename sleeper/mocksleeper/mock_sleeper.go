package mocksleeper

import (
	"github.com/levon-fischer/FantasyFieldhouse/model"
	"github.com/levon-fischer/FantasyFieldhouse/sleeper"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetUser(username string) (*sleeper.User, error) {
	args := c.Called(username)

	var res *sleeper.User
	if args.Get(0) != nil {
		res = args.Get(0).(*sleeper.User)
	}
	return res, args.Error(1)
}

func (c *Client) GetLeaguesForUser(userID, year string) ([]sleeper.League, error) {
	args := c.Called(userID, year)

	var res []sleeper.League
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.League)
	}
	return res, args.Error(1)
}

func (c *Client) GetLeague(leagueID string) (*sleeper.League, error) {
	args := c.Called(leagueID)

	var res *sleeper.League
	if args.Get(0) != nil {
		res = args.Get(0).(*sleeper.League)
	}
	return res, args.Error(1)
}

func (c *Client) GetRosters(leagueID string) ([]sleeper.Roster, error) {
	args := c.Called(leagueID)

	var res []sleeper.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Roster)
	}
	return res, args.Error(1)
}

func (c *Client) GetLeagueUsers(leagueID string) ([]sleeper.Member, error) {
	args := c.Called(leagueID)

	var res []sleeper.Member
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Member)
	}
	return res, args.Error(1)
}

func (c *Client) GetMatchups(leagueID string, week int) ([]sleeper.Matchup, error) {
	args := c.Called(leagueID, week)

	var res []sleeper.Matchup
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Matchup)
	}
	return res, args.Error(1)
}

func (c *Client) GetWinnersBracket(leagueID string) ([]sleeper.BracketMatch, error) {
	args := c.Called(leagueID)

	var res []sleeper.BracketMatch
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.BracketMatch)
	}
	return res, args.Error(1)
}

func (c *Client) GetLosersBracket(leagueID string) ([]sleeper.BracketMatch, error) {
	args := c.Called(leagueID)

	var res []sleeper.BracketMatch
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.BracketMatch)
	}
	return res, args.Error(1)
}

func (c *Client) GetTransactions(leagueID string, week int) ([]sleeper.Transaction, error) {
	args := c.Called(leagueID, week)

	var res []sleeper.Transaction
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.Transaction)
	}
	return res, args.Error(1)
}

func (c *Client) GetDraft(draftID string) (*sleeper.Draft, error) {
	args := c.Called(draftID)

	var res *sleeper.Draft
	if args.Get(0) != nil {
		res = args.Get(0).(*sleeper.Draft)
	}
	return res, args.Error(1)
}

func (c *Client) GetDraftPicks(draftID string) ([]sleeper.DraftPick, error) {
	args := c.Called(draftID)

	var res []sleeper.DraftPick
	if args.Get(0) != nil {
		res = args.Get(0).([]sleeper.DraftPick)
	}
	return res, args.Error(1)
}

func (c *Client) LoadPlayers() ([]model.Player, error) {
	args := c.Called()

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}
	return res, args.Error(1)
}
