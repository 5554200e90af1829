package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/levon-fischer/FantasyFieldhouse/model"
)

func (db *postgresDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, username, email, password_hash, registered, created
					FROM users WHERE id=@id`

	u, err := scanUser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user %s: %w", id, err)
	}
	return u, nil
}

func (db *postgresDB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, email, password_hash, registered, created
					FROM users WHERE lower(username)=lower(@username)`

	u, err := scanUser(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"username": username}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user %s: %w", username, err)
	}
	return u, nil
}

func (db *postgresDB) InsertUser(ctx context.Context, u *model.User) error {
	const query = `INSERT INTO users (id, username, email, password_hash, registered, created)
					VALUES (@id, @username, @email, @passwordHash, @registered, @created)
					ON CONFLICT (id) DO NOTHING`

	created := db.clock.Now().UTC()
	_, err := db.pool.Exec(ctx, query, pgx.NamedArgs{
		"id":           u.ID,
		"username":     u.Username,
		"email":        nullIfEmpty(u.Email),
		"passwordHash": nullIfEmpty(u.PasswordHash),
		"registered":   u.Registered,
		"created":      created,
	})
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	u.Created = created
	return nil
}

func (db *postgresDB) UpgradeUser(ctx context.Context, id, email, passwordHash string) error {
	const query = `UPDATE users SET email=@email, password_hash=@passwordHash, registered=TRUE
					WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{
		"id":           id,
		"email":        email,
		"passwordHash": passwordHash,
	})
	if err != nil {
		return fmt.Errorf("error upgrading user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var email, passwordHash sql.NullString
	var created pgtype.Timestamptz
	err := row.Scan(&u.ID, &u.Username, &email, &passwordHash, &u.Registered, &created)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.PasswordHash = passwordHash.String
	u.Created = created.Time
	return &u, nil
}
