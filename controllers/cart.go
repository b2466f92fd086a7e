package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

// CartManager is what the cart endpoints need from the service layer.
type CartManager interface {
	GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// CartController handles cart-related requests
type CartController struct {
	carts    CartManager
	validate *validator.Validate
}

// NewCartController creates a new CartController
func NewCartController(carts CartManager) *CartController {
	return &CartController{carts: carts, validate: validator.New()}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,gte=0"`
}

// GetCart retrieves the user's cart, creating an empty one on first access.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// AddToCart adds a product to the user's cart. A missing quantity defaults
// to one.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, ok := pathObjectID(w, req.ProductID)
	if !ok {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.carts.AddItem(ctx, userID, productID, req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// UpdateQuantity sets the quantity of a product already in the cart.
// Quantity zero removes the product.
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := cc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	productID, ok := pathObjectID(w, req.ProductID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.carts.SetItemQuantity(ctx, userID, productID, *req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// RemoveFromCart removes a product from the user's cart.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	productID, ok := pathObjectID(w, mux.Vars(r)["productId"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.carts.RemoveItem(ctx, userID, productID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// ClearCart empties the user's cart. Clearing a cart that does not exist
// yet succeeds; the result is the same empty cart either way.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.carts.Clear(ctx, userID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Cart cleared successfully")
}
