package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
)

const ScoreSubject = "score.feed"

// Broker pushes applied scoring events onto NATS for the feed service.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishScore publishes one ScoreUpdate to the score feed subject.
func (b *Broker) PublishScore(u comm.ScoreUpdate) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}

	if err := b.Conn.Publish(ScoreSubject, data); err != nil {
		log.Errorf("Error publishing to topic %s: %s", ScoreSubject, err)
		return err
	}

	return nil
}
