package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerMatchStats is one player's batting/bowling tally for one match,
// at most one row per (match, player). OversBowled follows cricket's
// ball-counting notation: 0.1 per delivery, a full unit per completed
// over, so it is kept as a decimal, never a float.
type PlayerMatchStats struct {
	ID          int64           `json:"id"` // Primary key
	MatchID     int64           `json:"match_id"`
	PlayerID    int64           `json:"player_id"`
	UserID      int64           `json:"user_id"` // FK to users(user_id), the owner
	Runs        int             `json:"runs"`
	Balls       int             `json:"balls"`
	Wickets     int             `json:"wickets"`
	OversBowled decimal.Decimal `json:"overs_bowled"`
	BowlingRuns int             `json:"bowling_runs"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BallIncrement is the overs-bowled delta for one delivery.
var BallIncrement = decimal.New(1, -1) // 0.1

// OverIncrement is the overs-bowled delta for a completed over.
var OverIncrement = decimal.New(1, 0) // 1.0
