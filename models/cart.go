package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/money"
)

// CartItem is one product line in a cart. Subtotal is the unit price at the
// time of the last mutation times the quantity. A cart holds at most one
// line per product, and a stored line always has quantity >= 1.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Subtotal  money.Amount       `bson:"subtotal" json:"subtotal"`
}

// Cart represents a user's shopping cart. There is exactly one cart per
// user, created lazily on first access and never deleted, only emptied.
// TotalPrice is recomputed from the line subtotals after every mutation.
// Version backs optimistic-concurrency saves and is not exposed to clients.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	CartItems  []CartItem         `bson:"cart_items" json:"cart_items"`
	TotalPrice money.Amount       `bson:"total_price" json:"total_price"`
	Version    int64              `bson:"version" json:"-"`
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID primitive.ObjectID) int {
	for i, item := range c.CartItems {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// RecomputeTotal rederives TotalPrice from the current line subtotals.
func (c *Cart) RecomputeTotal() {
	subtotals := make([]money.Amount, len(c.CartItems))
	for i, item := range c.CartItems {
		subtotals[i] = item.Subtotal
	}
	c.TotalPrice = money.Total(subtotals)
}
