package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/money"
	"go-shop/services"
	"go-shop/utils"
)

type mockCartManager struct {
	getOrCreateFunc func(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	addItemFunc     func(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	setQuantityFunc func(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	removeItemFunc  func(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	clearFunc       func(ctx context.Context, userID primitive.ObjectID) error
}

func (m *mockCartManager) GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return m.getOrCreateFunc(ctx, userID)
}

func (m *mockCartManager) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	return m.addItemFunc(ctx, userID, productID, quantity)
}

func (m *mockCartManager) SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	return m.setQuantityFunc(ctx, userID, productID, quantity)
}

func (m *mockCartManager) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	return m.removeItemFunc(ctx, userID, productID)
}

func (m *mockCartManager) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return m.clearFunc(ctx, userID)
}

func authedRequest(method, target, body string, userID primitive.ObjectID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	claims := &utils.Claims{UserID: userID.Hex(), Email: "buyer@example.com"}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestAddToCart(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	manager := &mockCartManager{
		addItemFunc: func(_ context.Context, gotUser, gotProduct primitive.ObjectID, quantity int) (*models.Cart, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, productID, gotProduct)
			assert.Equal(t, 2, quantity)
			return &models.Cart{
				UserID: gotUser,
				CartItems: []models.CartItem{
					{ProductID: gotProduct, Quantity: 2, Subtotal: money.Amount(20000)},
				},
				TotalPrice: money.Amount(20000),
			}, nil
		},
	}
	cc := NewCartController(manager)

	body := `{"product_id":"` + productID.Hex() + `","quantity":2}`
	rec := httptest.NewRecorder()
	cc.AddToCart(rec, authedRequest(http.MethodPost, "/cart/addToCart", body, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":200.00`)
}

func TestAddToCart_DefaultsQuantityToOne(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	manager := &mockCartManager{
		addItemFunc: func(_ context.Context, _, _ primitive.ObjectID, quantity int) (*models.Cart, error) {
			assert.Equal(t, 1, quantity)
			return &models.Cart{UserID: userID}, nil
		},
	}
	cc := NewCartController(manager)

	body := `{"product_id":"` + productID.Hex() + `"}`
	rec := httptest.NewRecorder()
	cc.AddToCart(rec, authedRequest(http.MethodPost, "/cart/addToCart", body, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddToCart_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"inactive product", services.ErrProductInactive, http.StatusBadRequest},
		{"unknown product", services.ErrProductNotFound, http.StatusNotFound},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &mockCartManager{
				addItemFunc: func(context.Context, primitive.ObjectID, primitive.ObjectID, int) (*models.Cart, error) {
					return nil, tt.serviceErr
				},
			}
			cc := NewCartController(manager)

			body := `{"product_id":"` + primitive.NewObjectID().Hex() + `","quantity":1}`
			rec := httptest.NewRecorder()
			cc.AddToCart(rec, authedRequest(http.MethodPost, "/cart/addToCart", body, primitive.NewObjectID()))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAddToCart_InvalidBody(t *testing.T) {
	cc := NewCartController(&mockCartManager{})

	rec := httptest.NewRecorder()
	cc.AddToCart(rec, authedRequest(http.MethodPost, "/cart/addToCart", `{"quantity":`, primitive.NewObjectID()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	cc.AddToCart(rec, authedRequest(http.MethodPost, "/cart/addToCart", `{"quantity":2}`, primitive.NewObjectID()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCart_Unauthenticated(t *testing.T) {
	cc := NewCartController(&mockCartManager{})

	req := httptest.NewRequest(http.MethodPost, "/cart/addToCart", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	cc.AddToCart(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateQuantity_RequiresQuantityField(t *testing.T) {
	cc := NewCartController(&mockCartManager{})

	body := `{"product_id":"` + primitive.NewObjectID().Hex() + `"}`
	rec := httptest.NewRecorder()
	cc.UpdateQuantity(rec, authedRequest(http.MethodPut, "/cart/updateQuantity", body, primitive.NewObjectID()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_ZeroIsPassedThrough(t *testing.T) {
	called := false
	manager := &mockCartManager{
		setQuantityFunc: func(_ context.Context, _, _ primitive.ObjectID, quantity int) (*models.Cart, error) {
			called = true
			assert.Equal(t, 0, quantity)
			return &models.Cart{}, nil
		},
	}
	cc := NewCartController(manager)

	body := `{"product_id":"` + primitive.NewObjectID().Hex() + `","quantity":0}`
	rec := httptest.NewRecorder()
	cc.UpdateQuantity(rec, authedRequest(http.MethodPut, "/cart/updateQuantity", body, primitive.NewObjectID()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestClearCart(t *testing.T) {
	cleared := false
	manager := &mockCartManager{
		clearFunc: func(context.Context, primitive.ObjectID) error {
			cleared = true
			return nil
		},
	}
	cc := NewCartController(manager)

	rec := httptest.NewRecorder()
	cc.ClearCart(rec, authedRequest(http.MethodDelete, "/cart/clearCart", "", primitive.NewObjectID()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cleared)
}
