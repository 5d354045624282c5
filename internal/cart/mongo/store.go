package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commercekit/storefront/internal/cart"
)

// Store persists carts as MongoDB documents, one per owner.
type Store struct {
	collection *mongo.Collection
}

// NewStore binds the store to the "carts" collection.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection("carts")}
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the unique owner index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create cart owner index: %w", err)
	}
	return nil
}

// Get fetches the owner's cart document.
func (s *Store) Get(ctx context.Context, owner string) (*cart.Cart, error) {
	var c cart.Cart
	err := s.collection.FindOne(ctx, bson.M{"owner": owner}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// Upsert replaces the owner's cart, creating it when absent.
func (s *Store) Upsert(ctx context.Context, c cart.Cart) error {
	filter := bson.M{"owner": c.Owner}
	opts := options.Replace().SetUpsert(true)

	if _, err := s.collection.ReplaceOne(ctx, filter, c, opts); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}

// Delete removes the owner's cart. Deleting an absent cart is a no-op.
func (s *Store) Delete(ctx context.Context, owner string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"owner": owner}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
