package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chainlink-service/internal/domain"
)

const resultsCollection = "results"

// MongoConfig controls the document-store connection.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoPublisher upserts settled matchups into a results collection, keyed
// by (league, external id) so re-publishing the same result is idempotent.
type MongoPublisher struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoPublisher connects to the document store and verifies the
// connection.
func NewMongoPublisher(ctx context.Context, cfg MongoConfig) (*MongoPublisher, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoPublisher{
		client: client,
		coll:   client.Database(cfg.Database).Collection(resultsCollection),
		now:    time.Now,
	}, nil
}

type resultDocument struct {
	League     string    `bson:"league"`
	ExternalID string    `bson:"externalId"`
	Home       string    `bson:"home"`
	Away       string    `bson:"away"`
	HomeValue  float64   `bson:"homeValue"`
	AwayValue  float64   `bson:"awayValue"`
	Winner     string    `bson:"winner"`
	Status     string    `bson:"status"`
	StartTime  time.Time `bson:"startTime"`
	SettledAt  time.Time `bson:"settledAt"`
}

func (p *MongoPublisher) PublishResult(ctx context.Context, m domain.Matchup) error {
	doc := resultDocument{
		League:     string(m.League),
		ExternalID: m.ExternalID,
		Home:       m.Home.Name,
		Away:       m.Away.Name,
		HomeValue:  m.Home.Value,
		AwayValue:  m.Away.Value,
		Winner:     string(m.Winner),
		Status:     string(m.Status),
		StartTime:  m.StartTime,
		SettledAt:  p.now().UTC(),
	}

	filter := bson.M{"league": doc.League, "externalId": doc.ExternalID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	if _, err := p.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("publish result %s/%s: %w", doc.League, doc.ExternalID, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (p *MongoPublisher) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}

var _ Publisher = (*MongoPublisher)(nil)
