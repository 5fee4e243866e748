package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

type mongoBlob struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStorage keeps one document per key.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStorage connects to uri and checks the server is reachable.
func NewMongoStorage(ctx context.Context, uri, database, collection string) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, oops.With("context", "failed to connect to mongo").Wrap(err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, oops.With("context", "failed to ping mongo").Wrap(err)
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoBlob
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrBlobNotFound
		}
		return nil, oops.With("key", key, "context", "failed to read blob").Wrap(err)
	}
	return doc.Value, nil
}

func (s *MongoStorage) Put(ctx context.Context, key string, value []byte) error {
	doc := mongoBlob{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return oops.With("key", key, "context", "failed to write blob").Wrap(err)
	}
	return nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
