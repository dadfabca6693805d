package storage

import (
	"context"
	stderrors "errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// MongoBackend stores one document per key in a collection.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoBackend connects to uri and uses database.collection.
func NewMongoBackend(ctx context.Context, uri, database, collection string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Name returns "mongo".
func (b *MongoBackend) Name() string { return "mongo" }

// Get retrieves a value.
func (b *MongoBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := b.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, transient(err)
	}
	return entry.Data, true, nil
}

// Set upserts a value.
func (b *MongoBackend) Set(ctx context.Context, key string, data []byte) error {
	entry := mongoEntry{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	return transient(err)
}

// Delete removes a key.
func (b *MongoBackend) Delete(ctx context.Context, key string) error {
	_, err := b.coll.DeleteOne(ctx, bson.M{"_id": key})
	return transient(err)
}

// List returns the keys with the given prefix, sorted.
func (b *MongoBackend) List(ctx context.Context, prefix string) ([]string, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := b.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, transient(err)
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var doc struct {
			Key string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		keys = append(keys, doc.Key)
	}
	if err := cur.Err(); err != nil {
		return nil, transient(err)
	}
	return keys, nil
}

// Close disconnects the client.
func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

var _ Backend = (*MongoBackend)(nil)
