package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/money"
)

// seedCart puts a cart with the given lines into the store.
func seedCart(t *testing.T, store *mockCartStore, userID primitive.ObjectID, items ...models.CartItem) *models.Cart {
	t.Helper()
	cart, err := store.GetOrCreate(context.Background(), userID)
	require.NoError(t, err)
	cart.CartItems = items
	cart.RecomputeTotal()
	require.NoError(t, store.Save(context.Background(), cart))
	return cart
}

func TestCheckout_SnapshotsCartIntoOrder(t *testing.T) {
	store := newMockCartStore()
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)
	userID := primitive.NewObjectID()

	p1, p2 := primitive.NewObjectID(), primitive.NewObjectID()
	seedCart(t, store, userID,
		models.CartItem{ProductID: p1, Quantity: 2, Subtotal: money.Amount(20000)},
		models.CartItem{ProductID: p2, Quantity: 3, Subtotal: money.Amount(15000)},
	)

	order, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.OrderedOn.IsZero())
	assert.Equal(t, money.Amount(35000), order.TotalPrice)
	require.Len(t, order.ProductsOrdered, 2)
	assert.Equal(t, models.OrderItem{ProductID: p1, Quantity: 2, Subtotal: money.Amount(20000)}, order.ProductsOrdered[0])
	assert.Equal(t, models.OrderItem{ProductID: p2, Quantity: 3, Subtotal: money.Amount(15000)}, order.ProductsOrdered[1])

	// the cart is emptied, not deleted
	cart, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
	assert.Equal(t, money.Amount(0), cart.TotalPrice)
}

func TestCheckout_EmptyCart(t *testing.T) {
	store := newMockCartStore()
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)
	userID := primitive.NewObjectID()

	seedCart(t, store, userID) // exists but has no items

	_, err := svc.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestCheckout_AbsentCart(t *testing.T) {
	store := newMockCartStore()
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestCheckout_ClearIsRetried(t *testing.T) {
	store := newMockCartStore()
	store.clearFailures = clearRetries - 1
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)
	userID := primitive.NewObjectID()

	seedCart(t, store, userID,
		models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 1, Subtotal: money.Amount(5000)},
	)

	_, err := svc.Checkout(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, clearRetries, store.clearCalls)
	assert.Len(t, orders.orders, 1)

	cart, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.CartItems)
}

func TestCheckout_ClearFailureDoesNotDuplicateOrder(t *testing.T) {
	store := newMockCartStore()
	store.clearFailures = clearRetries
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)
	userID := primitive.NewObjectID()

	seedCart(t, store, userID,
		models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 1, Subtotal: money.Amount(5000)},
	)

	_, err := svc.Checkout(context.Background(), userID, "")
	assert.Error(t, err)
	// the order stands; the failed clear is never escalated to a re-checkout
	assert.Len(t, orders.orders, 1)
}

func TestCheckout_SendsConfirmationEmail(t *testing.T) {
	store := newMockCartStore()
	orders := &mockOrderStore{}
	mailer := newMockMailer()
	svc := NewCheckoutService(store, orders, mailer)
	userID := primitive.NewObjectID()

	seedCart(t, store, userID,
		models.CartItem{ProductID: primitive.NewObjectID(), Quantity: 1, Subtotal: money.Amount(5000)},
	)

	_, err := svc.Checkout(context.Background(), userID, "buyer@example.com")
	require.NoError(t, err)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "buyer@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not sent")
	}
}

func TestListOrdersForUser_NoOrders(t *testing.T) {
	svc := NewCheckoutService(newMockCartStore(), &mockOrderStore{}, nil)

	orders, err := svc.ListOrdersForUser(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestListOrdersForUser_MostRecentFirst(t *testing.T) {
	store := newMockCartStore()
	orders := &mockOrderStore{}
	svc := NewCheckoutService(store, orders, nil)
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	now := time.Now()
	orders.orders = []models.Order{
		{ID: primitive.NewObjectID(), UserID: userID, OrderedOn: now.Add(-2 * time.Hour)},
		{ID: primitive.NewObjectID(), UserID: otherID, OrderedOn: now.Add(-time.Hour)},
		{ID: primitive.NewObjectID(), UserID: userID, OrderedOn: now},
	}

	mine, err := svc.ListOrdersForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].OrderedOn.After(mine[1].OrderedOn))
	for _, o := range mine {
		assert.Equal(t, userID, o.UserID)
	}

	all, err := svc.ListAllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
