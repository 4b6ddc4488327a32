package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase   = "labyrinth"
	defaultMongoCollection = "saves"
)

func init() {
	Register("mongo", func(opts Options) (Medium, error) {
		if opts.MongoURI == "" {
			return nil, errors.New("persist: mongo backend needs a uri")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("persist: connect mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("persist: ping mongo: %w", err)
		}
		return NewMongo(client, opts.MongoDatabase, opts.MongoCollection, opts.key()), nil
	})
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo stores the record as a single document keyed by _id.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	key        string
}

// NewMongo creates a medium on the given database and collection. Empty
// names fall back to labyrinth/saves.
func NewMongo(client *mongo.Client, dbName, collectionName, key string) *Mongo {
	if dbName == "" {
		dbName = defaultMongoDatabase
	}
	if collectionName == "" {
		collectionName = defaultMongoCollection
	}
	if key == "" {
		key = DefaultKey
	}
	return &Mongo{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
		key:        key,
	}
}

// Name implements Medium.
func (m *Mongo) Name() string { return "mongo" }

// Read implements Medium.
func (m *Mongo) Read(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var rec mongoRecord
	err := m.collection.FindOne(ctx, bson.M{"_id": m.key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: mongo find %s: %w", m.key, err)
	}
	return rec.Data, nil
}

// Write implements Medium. The whole document is replaced.
func (m *Mongo) Write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	rec := mongoRecord{ID: m.key, Data: data, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, bson.M{"_id": m.key}, rec, opts); err != nil {
		return fmt.Errorf("persist: mongo replace %s: %w", m.key, err)
	}
	return nil
}

// Delete implements Medium.
func (m *Mongo) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": m.key}); err != nil {
		return fmt.Errorf("persist: mongo delete %s: %w", m.key, err)
	}
	return nil
}

// Close implements Medium.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
