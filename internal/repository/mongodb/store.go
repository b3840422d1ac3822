package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. The set only ever grows: EnsureCollections creates the
// missing ones and never drops or renames anything.
const (
	CollUsers        = "users"
	CollBreeders     = "breeders"
	CollPrices       = "prices"
	CollSheep        = "sheep"
	CollHealth       = "health"
	CollProduction   = "production"
	CollReproduction = "reproduction"
	CollNutrition    = "nutrition"
)

var collections = []string{
	CollUsers, CollBreeders, CollPrices, CollSheep,
	CollHealth, CollProduction, CollReproduction, CollNutrition,
}

// Store is the named-collection persistence primitive. It is constructed
// once at startup and injected into the repository; nothing reopens a
// connection per call.
type Store struct {
	client *mongo.Client
	dbName string
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// EnsureCollections creates any collection absent from a previously
// initialized database and the unique username index backing atomic
// insert-if-absent registration. Idempotent.
func (s *Store) EnsureCollections(ctx context.Context) error {
	db := s.client.Database(s.dbName)

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range collections {
		if present[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	_, err = db.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure username index: %w", err)
	}

	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// getAll reads every item of a collection. No ordering guarantee is made and
// callers do not rely on one.
func getAll[T any](ctx context.Context, s *Store, coll string) ([]T, error) {
	cursor, err := s.collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all in %s: %w", coll, err)
	}

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll, err)
	}
	return items, nil
}

// put inserts or fully replaces the item stored under id. Upsert semantics,
// never a partial patch.
func put(ctx context.Context, s *Store, coll, id string, item any) error {
	_, err := s.collection(coll).ReplaceOne(ctx,
		bson.M{"_id": id}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", coll, id, err)
	}
	return nil
}

// remove deletes the item stored under id. Removing an absent id is a no-op,
// not an error.
func remove(ctx context.Context, s *Store, coll, id string) error {
	if _, err := s.collection(coll).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", coll, id, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
