package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/money"
	"go-shop/repository"
)

// CartStore is the cart persistence the services need.
// Consumers define this interface, not the MongoDB implementation.
type CartStore interface {
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// ProductCatalog supplies current price and availability by product ID.
type ProductCatalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// saveRetries bounds the optimistic-concurrency retry loop for cart saves.
const saveRetries = 3

// CartService maintains per-user carts. Every mutation re-reads the
// persisted cart, applies the change, recomputes the total from the line
// subtotals and saves under a version check, retrying on conflict. Nothing
// is cached between requests.
type CartService struct {
	carts   CartStore
	catalog ProductCatalog
}

// NewCartService creates a CartService
func NewCartService(carts CartStore, catalog ProductCatalog) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// GetOrCreateCart returns the user's cart, creating an empty one on first
// access.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// AddItem puts quantity units of a product into the cart. If the product is
// already present the existing line's quantity and subtotal are incremented
// by the new contribution at the current catalog price; otherwise a new line
// is appended.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}

	contribution, err := money.Subtotal(product.Price, quantity)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, userID, true, func(cart *models.Cart) error {
		if i := cart.FindItem(productID); i >= 0 {
			cart.CartItems[i].Quantity += quantity
			cart.CartItems[i].Subtotal += contribution
		} else {
			cart.CartItems = append(cart.CartItems, models.CartItem{
				ProductID: productID,
				Quantity:  quantity,
				Subtotal:  contribution,
			})
		}
		return nil
	})
}

// SetItemQuantity sets (not increments) the quantity of an existing line.
// Quantity zero removes the line. Otherwise the subtotal is recomputed from
// the current catalog price, so pricing is revalidated on every change
// rather than frozen at add time.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		i := cart.FindItem(productID)
		if i < 0 {
			return ErrItemNotFound
		}

		if quantity == 0 {
			cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
			return nil
		}

		product, err := s.catalog.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return ErrProductInactive
		}

		subtotal, err := money.Subtotal(product.Price, quantity)
		if err != nil {
			return err
		}
		cart.CartItems[i].Quantity = quantity
		cart.CartItems[i].Subtotal = subtotal
		return nil
	})
}

// RemoveItem deletes the line for the product, failing with ErrItemNotFound
// if it is not in the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	return s.mutate(ctx, userID, false, func(cart *models.Cart) error {
		i := cart.FindItem(productID)
		if i < 0 {
			return ErrItemNotFound
		}
		cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
		return nil
	})
}

// Clear empties the user's cart. A cart that was never created is treated
// as already empty, so clearing it succeeds.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}

// mutate runs the read-apply-save cycle under the version check. create
// selects get-or-create semantics for operations that may touch a cart the
// user has never seen.
func (s *CartService) mutate(ctx context.Context, userID primitive.ObjectID, create bool, apply func(*models.Cart) error) (*models.Cart, error) {
	for attempt := 0; ; attempt++ {
		var cart *models.Cart
		var err error
		if create {
			cart, err = s.carts.GetOrCreate(ctx, userID)
		} else {
			cart, err = s.carts.Get(ctx, userID)
		}
		if err != nil {
			return nil, err
		}

		if err := apply(cart); err != nil {
			return nil, err
		}
		cart.RecomputeTotal()

		err = s.carts.Save(ctx, cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		if attempt+1 >= saveRetries {
			log.Error().Stringer("user_id", userID).Msg("cart save conflict not resolved after retries")
			return nil, fmt.Errorf("cart save conflict not resolved: %w", err)
		}
		log.Warn().Stringer("user_id", userID).Int("attempt", attempt+1).Msg("cart save conflict, retrying")
	}
}
