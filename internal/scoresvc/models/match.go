package models

import (
	"database/sql"
	"time"
)

type Match struct {
	ID           int64          `json:"id"`           // Primary key
	UserID       int64          `json:"user_id"`      // FK to users(user_id), the owner
	MatchNumber  int            `json:"match_number"` // Monotonic per installation
	Date         time.Time      `json:"date"`
	Team1ID      int64          `json:"team1_id"`
	Team2ID      int64          `json:"team2_id"`
	TotalOvers   int            `json:"total_overs"`
	Team1Runs    int            `json:"team1_runs"`
	Team1Wickets int            `json:"team1_wickets"`
	Team2Runs    int            `json:"team2_runs"`
	Team2Wickets int            `json:"team2_wickets"`
	Winners      sql.NullString `json:"winners"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// OtherTeam returns the opponent of teamID, or 0 when teamID is not
// one of the match's two teams.
func (m *Match) OtherTeam(teamID int64) int64 {
	switch teamID {
	case m.Team1ID:
		return m.Team2ID
	case m.Team2ID:
		return m.Team1ID
	}
	return 0
}

// HasTeam reports whether teamID plays in this match.
func (m *Match) HasTeam(teamID int64) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}
