package comm

import (
	"encoding/json"
	"time"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "score"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// WatchRequest is sent by a web client that wants the live feed of a match.
type WatchRequest struct {
	MatchId int64 `json:"match_id"`
}

// ScoreUpdate is published by the score service after every applied
// scoring event and consumed by the feed service.
type ScoreUpdate struct {
	MatchId     int64     `json:"match_id"`
	OverId      int64     `json:"over_id"`
	OverNo      int       `json:"over_no"`
	Event       string    `json:"event"` // "0".."6", "W", "OVER"
	Runs        int       `json:"runs"`
	Wickets     int       `json:"wickets"`
	StrikerId   int64     `json:"striker_id"`
	BowlerId    int64     `json:"bowler_id"`
	NewOverId   int64     `json:"new_over_id,omitempty"`
	NewBowlerId int64     `json:"new_bowler_id,omitempty"`
	Message     string    `json:"message"`
	At          time.Time `json:"at"`
}

type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service id
	Timestamp time.Time `json:"timestamp"`
}

type ServiceShutdown struct {
	ID string `json:"id"` // service id
}
