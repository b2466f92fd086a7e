package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/money"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Subtotal  money.Amount       `bson:"subtotal" json:"subtotal"`
}

// Order represents a completed checkout. Orders are append-only: the core
// never mutates one after creation beyond its initial Pending status.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductsOrdered []OrderItem        `bson:"products_ordered" json:"products_ordered"`
	TotalPrice      money.Amount       `bson:"total_price" json:"total_price"`
	Status          OrderStatus        `bson:"status" json:"status"`
	OrderedOn       time.Time          `bson:"ordered_on" json:"ordered_on"`
}
