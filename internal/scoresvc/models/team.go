package models

import "time"

type Team struct {
	ID        int64     `json:"id"`      // Primary key
	UserID    int64     `json:"user_id"` // FK to users(user_id), the owner
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Roster, populated on detail reads only.
	Players []*Player `json:"players,omitempty"`
}
