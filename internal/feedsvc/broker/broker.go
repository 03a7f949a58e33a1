package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
)

// Appender archives every consumed score event.
type Appender interface {
	Append(ctx context.Context, u comm.ScoreUpdate) error
}

// Broker consumes score updates from the score service and hands them
// to the websocket fan-out.
type Broker struct {
	Conn    *nats.Conn
	Archive Appender
	Fanout  func(comm.ScoreUpdate)
}

func NewBroker(conn *nats.Conn, archive Appender, fanout func(comm.ScoreUpdate)) *Broker {
	return &Broker{
		Conn:    conn,
		Archive: archive,
		Fanout:  fanout,
	}
}

// PublishHeartbeat announces this instance is alive.
func (b *Broker) PublishHeartbeat(instanceId string) error {
	hb := comm.ServiceHeartbeat{ID: instanceId, Timestamp: time.Now()}
	data, err := json.Marshal(hb)
	if err != nil {
		return err
	}
	return b.Conn.Publish("service.heartbeat", data)
}

// PublishShutdown announces this instance is going away.
func (b *Broker) PublishShutdown(instanceId string) error {
	data, err := json.Marshal(comm.ServiceShutdown{ID: instanceId})
	if err != nil {
		return err
	}
	return b.Conn.Publish("service.shutdown", data)
}

// consume messages from score service
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	var update comm.ScoreUpdate
	if err := json.Unmarshal(msgNats.Data, &update); err != nil {
		log.Errorf("Error %s", err)
		return
	}

	if b.Archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := b.Archive.Append(ctx, update); err != nil {
			log.Errorf("Failed to archive score event for match %d: %v", update.MatchId, err)
		}
		cancel()
	}

	b.Fanout(update)
}
