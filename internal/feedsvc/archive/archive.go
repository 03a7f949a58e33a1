package archive

import (
	"context"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
)

const collectionName = "score_events"

// retention of archived score events; expired documents are reaped by
// the TTL index.
const retention = 24 * time.Hour

func ConnectToDB() (*mongo.Database, context.CancelFunc, error) {
	mongoURI := os.Getenv("MONGODB_URI")

	uri, err := url.Parse(mongoURI)
	if err != nil {
		log.Fatalf("Error parsing MongoDB URI: %v", err)
		return nil, nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Error pinging MongoDB: %v", err)
		return nil, nil, err
	}

	db := client.Database(dbName)

	return db, cancel, nil
}

type document struct {
	MatchID   int64            `bson:"match_id"`
	Update    comm.ScoreUpdate `bson:"update"`
	At        time.Time        `bson:"at"`
	ExpiresAt time.Time        `bson:"expires_at"`
}

// Archive keeps the recent score events of every match so a client
// joining a feed mid-match can catch up.
type Archive struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Archive {
	coll := db.Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := coll.Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		log.Fatal(err)
	}

	return &Archive{coll: coll}
}

func (a *Archive) Append(ctx context.Context, u comm.ScoreUpdate) error {
	now := time.Now()
	_, err := a.coll.InsertOne(ctx, document{
		MatchID:   u.MatchId,
		Update:    u,
		At:        now,
		ExpiresAt: now.Add(retention),
	})
	return err
}

// Recent returns up to limit archived events for a match, oldest first.
func (a *Archive) Recent(ctx context.Context, matchID int64, limit int64) ([]comm.ScoreUpdate, error) {
	opts := options.Find().SetSort(bson.M{"at": 1}).SetLimit(limit)

	cursor, err := a.coll.Find(ctx, bson.M{"match_id": matchID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	updates := make([]comm.ScoreUpdate, 0, len(docs))
	for _, d := range docs {
		updates = append(updates, d.Update)
	}
	return updates, nil
}
