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

// CategoryRepository owns the categories collection.
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a CategoryRepository over the categories collection
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection("categories")}
}

// Create inserts the category and fills in the generated ID.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}
	return nil
}

// FindByName returns the category or ErrCategoryNotFound.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// AddProduct records product membership on the category.
func (r *CategoryRepository) AddProduct(ctx context.Context, categoryID, productID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"products": productID}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": categoryID}, update)
	if err != nil {
		return fmt.Errorf("failed to add product to category: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// EnsureIndexes creates the unique name index.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	return nil
}
