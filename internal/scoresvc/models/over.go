package models

import "time"

// Over is one bowler's spell of deliveries within a match. The pair
// (match_id, over_no) is unique; the row is no longer touched once the
// next over starts.
type Over struct {
	ID            int64     `json:"id"`      // Primary key
	MatchID       int64     `json:"match_id"`
	UserID        int64     `json:"user_id"` // FK to users(user_id), the owner
	BowlingTeamID int64     `json:"bowling_team_id"`
	OverNo        int       `json:"over_no"` // 1-based
	BowlerID      int64     `json:"bowler_id"`
	Runs          int       `json:"runs"`
	Wickets       int       `json:"wickets"`
	OverSummary   string    `json:"over_summary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
