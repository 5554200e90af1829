package model

import "time"

// User is a person, either registered through sign-up or discovered as a
// league member. Shadow users carry only the remote id and a normalized
// username until they register, at which point the same row is upgraded in
// place. Usernames are case-insensitive identity keys system-wide.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Registered   bool
	Created      time.Time
}
