// Package models defines server-side data models persisted in the database.
package models

import "time"

// Admin is an administrator identity. Username is unique.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
