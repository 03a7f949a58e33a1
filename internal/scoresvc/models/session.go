package models

import "time"

// SessionState tracks where a match's scoring session is in its life:
// toss resolved but no over bowled yet, an over in progress, or done.
type SessionState string

const (
	SessionAwaitingOpening SessionState = "awaiting_opening"
	SessionInOver          SessionState = "in_over"
	SessionCompleted       SessionState = "completed"
)

// ScoringSession is the durable in-progress-over state, one row per
// match. Every scorer with Write access sees the same row; it is
// mutated inside the same transaction as the over and stats writes.
type ScoringSession struct {
	MatchID          int64        `json:"match_id"` // Primary key
	BattingTeamID    int64        `json:"batting_team_id"`
	BowlingTeamID    int64        `json:"bowling_team_id"`
	TossWinnerID     int64        `json:"toss_winner_id"`
	TossDecision     string       `json:"toss_decision"`
	TotalOvers       int          `json:"total_overs"`
	StrikerID        int64        `json:"striker_id"`
	NonStrikerID     int64        `json:"non_striker_id"`
	BowlerID         int64        `json:"bowler_id"`
	RemainingBatters []int64      `json:"remaining_batters"` // ordered, excludes striker/non-striker
	DismissedBatters []int64      `json:"dismissed_batters"`
	State            SessionState `json:"state"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// IsDismissed reports whether playerID is already out.
func (s *ScoringSession) IsDismissed(playerID int64) bool {
	for _, id := range s.DismissedBatters {
		if id == playerID {
			return true
		}
	}
	return false
}

// Dismiss records playerID as out and drops it from the remaining
// list. Re-dismissing an already-out player is a no-op; it returns
// false in that case.
func (s *ScoringSession) Dismiss(playerID int64) bool {
	if s.IsDismissed(playerID) {
		return false
	}
	s.DismissedBatters = append(s.DismissedBatters, playerID)

	remaining := s.RemainingBatters[:0]
	for _, id := range s.RemainingBatters {
		if id != playerID {
			remaining = append(remaining, id)
		}
	}
	s.RemainingBatters = remaining
	return true
}

// SeedBatters installs the batting order, excluding the two players
// already at the wicket and anyone already dismissed.
func (s *ScoringSession) SeedBatters(roster []int64) {
	s.RemainingBatters = make([]int64, 0, len(roster))
	for _, id := range roster {
		if id == s.StrikerID || id == s.NonStrikerID || s.IsDismissed(id) {
			continue
		}
		s.RemainingBatters = append(s.RemainingBatters, id)
	}
}
