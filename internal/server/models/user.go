// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest and is
// cleared before a User leaves the service layer.
type User struct {
	ID           string
	Email        string
	Username     string
	Name         string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
}

// Sanitized returns a copy of u without the password digest.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}
