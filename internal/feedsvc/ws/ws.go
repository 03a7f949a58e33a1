package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
)

// replayLimit caps how many archived events a late joiner gets.
const replayLimit = 256

// RecentSource replays a match's archived events to a late joiner.
type RecentSource interface {
	Recent(ctx context.Context, matchID int64, limit int64) ([]comm.ScoreUpdate, error)
}

type Ws struct {
	connMap  sync.Map // to keep track of socket connection with socketId
	matchMap sync.Map // to keep track of socketId with watched matchId
	Archive  RecentSource
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch":
		s.handleWatch(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

func (s *Ws) handleWatch(socketId string, msg *comm.WSMessage) {
	var payload comm.WatchRequest
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_watch_data Malformed watch payload %s", err)
		return
	}
	if payload.MatchId == 0 {
		log.Error("Invalid watch payload: missing match id")
		return
	}

	s.matchMap.Store(socketId, payload.MatchId)
	log.Infof("Socket %s now watching match %d", socketId, payload.MatchId)

	s.replay(socketId, payload.MatchId)
}

// replay sends the archived events of the match so the new watcher
// catches up before live updates arrive.
func (s *Ws) replay(socketId string, matchId int64) {
	if s.Archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	updates, err := s.Archive.Recent(ctx, matchId, replayLimit)
	if err != nil {
		log.Errorf("Failed to load archived events for match %d: %v", matchId, err)
		return
	}

	conn, ok := s.GetConnection(socketId)
	if !ok {
		return
	}
	for i := range updates {
		if err := s.writeScore(conn, socketId, &updates[i]); err != nil {
			return
		}
	}
}

// BroadcastScore fans one live update out to every socket watching the
// match. Sockets that fail a write are dropped.
func (s *Ws) BroadcastScore(u comm.ScoreUpdate) {
	s.matchMap.Range(func(key, value interface{}) bool {
		if value.(int64) != u.MatchId {
			return true
		}
		socketId := key.(string)
		conn, ok := s.GetConnection(socketId)
		if !ok {
			s.matchMap.Delete(socketId)
			return true
		}
		if err := s.writeScore(conn, socketId, &u); err != nil {
			s.HandleDisconnect(socketId)
		}
		return true
	})
}

func (s *Ws) writeScore(conn *websocket.Conn, socketId string, u *comm.ScoreUpdate) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	msg := comm.WSMessage{Type: "score", Data: data, SocketId: socketId}
	if err := conn.WriteJSON(msg); err != nil {
		log.Errorf("Failed to write score to socket %s: %v", socketId, err)
		return err
	}
	return nil
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.matchMap.Delete(socketId)
}
