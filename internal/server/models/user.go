// Package models declares the persistent entities of the task-tracking
// server as plain structs shared by repositories and services.
package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt digest and is
// never serialized or returned to clients.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
