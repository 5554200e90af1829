package sleeper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/levon-fischer/FantasyFieldhouse/model"
)

const SleeperURL = "https://api.sleeper.app"

// Client is a typed, read-only view of the Sleeper API. Every method
// returns its zero value with a nil error when the remote reports the
// resource does not exist; "no data" is an expected outcome (walking past
// the oldest season in a chain, querying a week past the end of a season)
// and is never an error.
type Client interface {
	GetUser(username string) (*User, error)
	GetLeaguesForUser(userID, year string) ([]League, error)
	GetLeague(leagueID string) (*League, error)
	GetRosters(leagueID string) ([]Roster, error)
	GetLeagueUsers(leagueID string) ([]Member, error)
	GetMatchups(leagueID string, week int) ([]Matchup, error)
	GetWinnersBracket(leagueID string) ([]BracketMatch, error)
	GetLosersBracket(leagueID string) ([]BracketMatch, error)
	GetTransactions(leagueID string, week int) ([]Transaction, error)
	GetDraft(draftID string) (*Draft, error)
	GetDraftPicks(draftID string) ([]DraftPick, error)
	LoadPlayers() ([]model.Player, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	return NewForTest(SleeperURL), nil
}

// NewForTest returns a client pointed at an alternate base URL, typically a
// testutils.FakeSleeperServer.
func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (c *client) GetUser(username string) (*User, error) {
	var u User
	found, err := c.get(fmt.Sprintf("/v1/user/%s", username), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (c *client) GetLeaguesForUser(userID, year string) ([]League, error) {
	var leagues []League
	if _, err := c.get(fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, year), &leagues); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (c *client) GetLeague(leagueID string) (*League, error) {
	var l League
	found, err := c.get(fmt.Sprintf("/v1/league/%s", leagueID), &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

func (c *client) GetRosters(leagueID string) ([]Roster, error) {
	var rosters []Roster
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

func (c *client) GetLeagueUsers(leagueID string) ([]Member, error) {
	var members []Member
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/users", leagueID), &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *client) GetMatchups(leagueID string, week int) ([]Matchup, error) {
	var matchups []Matchup
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week), &matchups); err != nil {
		return nil, err
	}
	return matchups, nil
}

func (c *client) GetWinnersBracket(leagueID string) ([]BracketMatch, error) {
	var matches []BracketMatch
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/winners_bracket", leagueID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *client) GetLosersBracket(leagueID string) ([]BracketMatch, error) {
	var matches []BracketMatch
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/losers_bracket", leagueID), &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *client) GetTransactions(leagueID string, week int) ([]Transaction, error) {
	var transactions []Transaction
	if _, err := c.get(fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *client) GetDraft(draftID string) (*Draft, error) {
	var d Draft
	found, err := c.get(fmt.Sprintf("/v1/draft/%s", draftID), &d)
	if err != nil || !found {
		return nil, err
	}
	return &d, nil
}

func (c *client) GetDraftPicks(draftID string) ([]DraftPick, error) {
	var picks []DraftPick
	if _, err := c.get(fmt.Sprintf("/v1/draft/%s/picks", draftID), &picks); err != nil {
		return nil, err
	}
	return picks, nil
}

func (c *client) LoadPlayers() ([]model.Player, error) {
	var parsed map[string]sleeperPlayer
	found, err := c.get("/v1/players/nfl", &parsed)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("player catalog missing from sleeper")
	}

	result := make([]model.Player, 0, len(parsed))
	for _, p := range parsed {
		if len(p.Positions) == 0 || (p.FirstName == "Player" && p.LastName == "Invalid") {
			continue
		}
		result = append(result, model.Player{
			ID:           p.PlayerID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Position:     p.Positions[0],
			NFLTeam:      p.Team,
			Number:       p.Number,
			Age:          p.Age,
			Status:       p.Status,
			YearsExp:     p.YearsExp,
			Height:       p.Height,
			Weight:       p.Weight,
			InjuryStatus: p.InjuryStatus,
		})
	}

	return result, nil
}

// get fetches a single resource. It returns found=false for any non-200
// status and for the literal "null" body sleeper serves for some missing
// resources, leaving result untouched in both cases.
func (c *client) get(path string, result any) (bool, error) {
	req, err := http.NewRequest(http.MethodGet, c.url+path, nil)
	if err != nil {
		return false, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("error reading response from sleeper: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return false, fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return true, nil
}
