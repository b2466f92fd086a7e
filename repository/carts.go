package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// CartRepository owns the carts collection. One document per user, enforced
// by a unique index on user_id; documents are created lazily by GetOrCreate
// and are emptied rather than deleted.
type CartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a CartRepository over the carts collection
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{collection: db.Collection("carts")}
}

// GetOrCreate returns the user's cart, inserting an empty one if none
// exists. The find-or-insert is a single FindOneAndUpdate upsert so two
// concurrent calls for a new user cannot create duplicate documents.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":     userID,
		"cart_items":  bson.A{},
		"total_price": 0,
		"version":     0,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return &cart, nil
}

// Get returns the user's cart or ErrCartNotFound.
func (r *CartRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

// Save writes the cart's items and total under optimistic concurrency: the
// update matches only if the stored version still equals cart.Version.
// Returns ErrVersionConflict if another writer got there first.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	filter := bson.M{"_id": cart.ID, "version": cart.Version}
	update := bson.M{
		"$set": bson.M{
			"cart_items":  cart.CartItems,
			"total_price": cart.TotalPrice,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	cart.Version++
	return nil
}

// Clear empties the user's cart in a single unconditional update. Clearing
// an absent or already-empty cart succeeds, which makes the operation safe
// to retry.
func (r *CartRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"cart_items":  bson.A{},
			"total_price": 0,
		},
		"$inc": bson.M{"version": 1},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique per-user index.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
