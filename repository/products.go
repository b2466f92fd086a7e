package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
	"go-shop/money"
)

// ProductRepository owns the products collection. For the cart and checkout
// path only FindByID matters: it is the catalog read that supplies current
// price and availability.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a ProductRepository over the products collection
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

// FindByID returns the product or ErrProductNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// ExistsByName reports whether a product with the given name exists.
func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	return count > 0, nil
}

// Create inserts the product and fills in its generated ID.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedOn = now
	product.UpdatedOn = now

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// Update overwrites the mutable product fields.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) error {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"discount":    product.Discount,
		"updated_on":  time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SetActive archives (false) or reactivates (true) the product.
func (r *ProductRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	update := bson.M{"$set": bson.M{"is_active": active, "updated_on": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete permanently removes the product.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// FindAll returns every product, including archived ones.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

// FindActive returns only purchasable products.
func (r *ProductRepository) FindActive(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

// SearchByName matches product names case-insensitively by substring.
func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	return r.find(ctx, bson.M{"name": pattern})
}

// SearchByPriceRange returns products priced within [min, max].
func (r *ProductRepository) SearchByPriceRange(ctx context.Context, min, max money.Amount) ([]models.Product, error) {
	return r.find(ctx, bson.M{"price": bson.M{"$gte": min, "$lte": max}})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
