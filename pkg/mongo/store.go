package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

const maxUpdateRetries = 10

// entry is the document stored per key.
type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store is a kvstore.Store with one document per key.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewStore uses the named database and collection of a connected client.
func NewStore(client *mongo.Client, database, collection string) *Store {
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
		now:    time.Now,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", kvstore.ErrEmptyKey
	}
	var doc entry
	if err := s.coll.FindOne(ctx, byKey(key)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", kvstore.ErrNotFound
		}
		return "", errors.Join(ErrOperationFailed, err)
	}
	return doc.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	doc := entry{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	if _, err := s.coll.ReplaceOne(ctx, byKey(key), doc, options.Replace().SetUpsert(true)); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}
	if _, err := s.coll.DeleteOne(ctx, byKey(key)); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

// Update swaps the value only if it still holds what was read, and inserts
// only if the key is still absent. A lost race re-reads and retries.
func (s *Store) Update(ctx context.Context, key string, fn kvstore.UpdateFunc) error {
	if key == "" {
		return kvstore.ErrEmptyKey
	}

	for range maxUpdateRetries {
		current, err := s.Get(ctx, key)
		found := err == nil
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		if !found {
			_, err := s.coll.InsertOne(ctx, entry{Key: key, Value: next, UpdatedAt: s.now().UTC()})
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			if err != nil {
				return errors.Join(ErrOperationFailed, err)
			}
			return nil
		}

		filter := bson.D{{Key: "_id", Value: key}, {Key: "value", Value: current}}
		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "value", Value: next},
			{Key: "updated_at", Value: s.now().UTC()},
		}}}
		res, err := s.coll.UpdateOne(ctx, filter, update)
		if err != nil {
			return errors.Join(ErrOperationFailed, err)
		}
		if res.MatchedCount == 1 {
			return nil
		}
	}
	return ErrUpdateConflict
}

// Healthcheck pings the primary.
func (s *Store) Healthcheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func byKey(key string) bson.D {
	return bson.D{{Key: "_id", Value: key}}
}
