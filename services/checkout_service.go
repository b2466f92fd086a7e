package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/repository"
)

// OrderStore is the append-only order persistence the checkout needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
}

// Mailer sends transactional mail.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

// clearRetries bounds the independent retry of the post-checkout cart clear.
const clearRetries = 3

// CheckoutService converts a cart into an immutable order and empties the
// cart afterwards.
type CheckoutService struct {
	carts  CartStore
	orders OrderStore
	mailer Mailer
}

// NewCheckoutService creates a CheckoutService. mailer may be nil.
func NewCheckoutService(carts CartStore, orders OrderStore, mailer Mailer) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, mailer: mailer}
}

// Checkout snapshots the cart's lines and stored total into a new Pending
// order, persists it, then clears the cart. The order total is copied, not
// recomputed, so it exactly matches what the user last saw. An absent cart
// is treated the same as an empty one.
//
// The cart clear is retried on its own because it is idempotent; the
// checkout as a whole is never retried here, which would risk a duplicate
// order. Known race: a cart mutation that lands between the read and the
// clear is lost with the clear.
func (s *CheckoutService) Checkout(ctx context.Context, userID primitive.ObjectID, email string) (*models.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          cart.UserID,
		ProductsOrdered: make([]models.OrderItem, len(cart.CartItems)),
		TotalPrice:      cart.TotalPrice,
		Status:          models.StatusPending,
		OrderedOn:       time.Now(),
	}
	for i, item := range cart.CartItems {
		order.ProductsOrdered[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal,
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	var clearErr error
	for attempt := 1; attempt <= clearRetries; attempt++ {
		if clearErr = s.carts.Clear(ctx, userID); clearErr == nil {
			break
		}
		log.Warn().Err(clearErr).Stringer("user_id", userID).Int("attempt", attempt).Msg("cart clear after checkout failed, retrying")
	}
	if clearErr != nil {
		log.Error().Err(clearErr).Stringer("order_id", order.ID).Msg("order created but cart not cleared")
		return nil, fmt.Errorf("order %s created but cart not cleared: %w", order.ID.Hex(), clearErr)
	}

	if s.mailer != nil && email != "" {
		go func(to string, snapshot models.Order) {
			if err := s.mailer.SendOrderConfirmation(context.Background(), to, &snapshot); err != nil {
				log.Error().Err(err).Str("email", to).Msg("failed to send order confirmation")
			}
		}(email, *order)
	}

	log.Info().Stringer("order_id", order.ID).Stringer("user_id", userID).Msg("order created")
	return order, nil
}

// ListOrdersForUser returns the user's orders, most recent first. A user
// with no orders gets an empty list, not an error.
func (s *CheckoutService) ListOrdersForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// ListAllOrders returns every order in the system; callers must already be
// authorized as admin.
func (s *CheckoutService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.FindAll(ctx)
}
