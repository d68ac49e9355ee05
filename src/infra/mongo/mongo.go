package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	DirectorsCollection = "directors"
	MoviesCollection    = "movies"

	directorIdentityIndex = "directors_identity_key_unique"
)

type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongoClient(uri string, database string, maxPoolSize int) (*MongoClient, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(uint64(maxPoolSize)). //nolint:all
		SetMinPoolSize(1).
		SetMaxConnIdleTime(5 * time.Minute).
		SetServerSelectionTimeout(5 * time.Second).
		SetTimeout(30 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	return &MongoClient{
		client:   client,
		database: client.Database(database),
	}, nil
}

func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.database.Collection(name)
}

// EnsureIndexes creates the unique index backing the director identity
// invariant. A compound index over the movie array would be multikey and
// enforce uniqueness per element, so the index is on the derived key.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	_, err := mc.Collection(DirectorsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identityKey", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(directorIdentityIndex),
	})
	if err != nil {
		return fmt.Errorf("failed to create director identity index: %w", err)
	}
	return nil
}

func (mc *MongoClient) Ping(ctx context.Context) error {
	return mc.client.Ping(ctx, readpref.Primary())
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.client.Disconnect(ctx)
}

// Drop removes every document of the given collections. Used by test suites.
func (mc *MongoClient) Drop(ctx context.Context, collections ...string) error {
	for _, name := range collections {
		if _, err := mc.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("failed to clean %s: %w", name, err)
		}
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// NewID returns a new ObjectID in its hex form; ids are stored as strings so
// the HTTP layer never has to know which store is behind it.
func NewID() string {
	return bson.NewObjectID().Hex()
}
