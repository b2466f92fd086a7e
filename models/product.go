package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/money"
)

// Product represents an item in the catalog. Price is the single source of
// truth for cart pricing; Discount is a static informational field and is
// never applied to subtotals.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       money.Amount       `bson:"price" json:"price"`
	Discount    money.Amount       `bson:"discount,omitempty" json:"discount,omitempty"`
	CategoryID  primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedOn   time.Time          `bson:"created_on" json:"created_on"`
	UpdatedOn   time.Time          `bson:"updated_on" json:"updated_on"`
}

// Category groups products under a unique name
type Category struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string               `bson:"name" json:"name"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}
