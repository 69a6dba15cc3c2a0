package models

import "time"

// Task belongs to exactly one user; every query against tasks is scoped by
// UserID so rows are never visible across accounts.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
