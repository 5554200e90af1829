package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/levon-fischer/FantasyFieldhouse/db"
	"github.com/levon-fischer/FantasyFieldhouse/model"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownUsername = errors.New("username does not exist on sleeper")

// memberInfo is the per-member data the team synchronizer needs, keyed by
// remote user id.
type memberInfo struct {
	teamName     string
	commissioner bool
}

// syncUsers reconciles a season's league members against local users. Any
// member not known locally is staged as a shadow user carrying only the
// remote id and a normalized username; registration upgrades that same row
// later.
func (c *controller) syncUsers(ctx context.Context, seasonID string) ([]model.User, map[string]memberInfo, error) {
	members, err := c.sleeper.GetLeagueUsers(seasonID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading members for season %s: %w", seasonID, err)
	}

	staged := make([]model.User, 0, len(members))
	info := make(map[string]memberInfo, len(members))
	for _, m := range members {
		username := m.Username
		if username == "" {
			username = m.DisplayName
		}
		username = normalizeUsername(username)

		info[m.UserID] = memberInfo{
			teamName:     m.TeamName(),
			commissioner: m.IsOwner,
		}

		_, err := c.db.GetUser(ctx, m.UserID)
		if errors.Is(err, db.ErrUserNotFound) {
			staged = append(staged, model.User{ID: m.UserID, Username: username})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error looking up user %s: %w", m.UserID, err)
		}
	}
	return staged, info, nil
}

func (c *controller) RegisterUser(ctx context.Context, username, email, password string) (*model.User, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, errors.New("username must be provided")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	existing, err := c.db.GetUserByUsername(ctx, username)
	if err == nil {
		// A shadow user with this handle was discovered during some league
		// ingestion. Upgrade the same row rather than minting a second
		// identity.
		if err := c.db.UpgradeUser(ctx, existing.ID, email, string(hash)); err != nil {
			return nil, fmt.Errorf("error upgrading user %s: %w", existing.ID, err)
		}
		c.log.Info().Str("user", existing.ID).Msg("upgraded shadow user to registered")
		return c.db.GetUser(ctx, existing.ID)
	}
	if !errors.Is(err, db.ErrUserNotFound) {
		return nil, fmt.Errorf("error looking up username %s: %w", username, err)
	}

	// Never seen before: the remote id is the permanent key, so confirm the
	// handle with sleeper before creating the row.
	remote, err := c.sleeper.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("error looking up %s on sleeper: %w", username, err)
	}
	if remote == nil {
		return nil, ErrUnknownUsername
	}

	u := &model.User{
		ID:           remote.UserID,
		Username:     normalizeUsername(remote.Username),
		Email:        email,
		PasswordHash: string(hash),
		Registered:   true,
	}
	if err := c.db.InsertUser(ctx, u); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	c.log.Info().Str("user", u.ID).Msg("registered new user")
	return u, nil
}

// Usernames are case-insensitive identity keys system-wide, so they are
// stored and compared in one canonical form.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
