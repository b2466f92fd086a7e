package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

// OrderManager is what the order endpoints need from the service layer.
type OrderManager interface {
	Checkout(ctx context.Context, userID primitive.ObjectID, email string) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
}

// OrderController handles checkout and order queries
type OrderController struct {
	orders OrderManager
}

// NewOrderController creates a new OrderController
func NewOrderController(orders OrderManager) *OrderController {
	return &OrderController{orders: orders}
}

// Checkout converts the user's cart into a new order.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, claims, ok := requestUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.Checkout(ctx, userID, claims.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order is checked out successfully",
		"order":   order,
	})
}

// MyOrders lists the authenticated user's orders, most recent first.
func (oc *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requestUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.orders.ListOrdersForUser(ctx, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// AllOrders lists every order in the system. Admin only.
func (oc *OrderController) AllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.orders.ListAllOrders(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
