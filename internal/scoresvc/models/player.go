package models

import "time"

// Player career totals are mutated additively when a match completes.
type Player struct {
	ID           int64     `json:"id"`      // Primary key
	UserID       int64     `json:"user_id"` // FK to users(user_id), the owner
	Name         string    `json:"name"`
	TotalRuns    int       `json:"total_runs"`
	TotalWickets int       `json:"total_wickets"`
	TotalMatches int       `json:"total_matches"`
	TotalBalls   int       `json:"total_balls"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
