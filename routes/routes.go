package routes

import (
	"github.com/gorilla/mux"

	"go-shop/controllers"
	"go-shop/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	auth *middleware.AuthMiddleware,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
) {
	// Public routes
	router.HandleFunc("/users", userController.Register).Methods("POST")
	router.HandleFunc("/users/login", userController.Login).Methods("POST")
	router.HandleFunc("/products/active", productController.GetActiveProducts).Methods("GET")
	router.HandleFunc("/products/searchByName", productController.SearchByName).Methods("POST")
	router.HandleFunc("/products/searchByPrice", productController.SearchByPrice).Methods("POST")
	router.HandleFunc("/products/{productId}", productController.GetProductByID).Methods("GET")

	// Authenticated user routes
	users := router.PathPrefix("/users").Subrouter()
	users.Use(auth.Verify)
	users.HandleFunc("/details", userController.Details).Methods("GET")
	users.HandleFunc("/update-password", userController.UpdatePassword).Methods("PUT")

	usersAdmin := router.PathPrefix("/users").Subrouter()
	usersAdmin.Use(auth.Verify, middleware.RequireAdmin)
	usersAdmin.HandleFunc("/{userId}/set-as-admin", userController.SetAsAdmin).Methods("PUT")

	// Catalog admin routes
	productsAdmin := router.PathPrefix("/products").Subrouter()
	productsAdmin.Use(auth.Verify, middleware.RequireAdmin)
	productsAdmin.HandleFunc("/add-category", productController.CreateCategory).Methods("POST")
	productsAdmin.HandleFunc("", productController.CreateProduct).Methods("POST")
	productsAdmin.HandleFunc("/all", productController.GetProducts).Methods("GET")
	productsAdmin.HandleFunc("/archive/{productId}", productController.ArchiveProduct).Methods("PUT")
	productsAdmin.HandleFunc("/activate/{productId}", productController.ActivateProduct).Methods("PUT")
	productsAdmin.HandleFunc("/permanent-delete/{productId}", productController.DeleteProduct).Methods("DELETE")
	productsAdmin.HandleFunc("/{productId}", productController.UpdateProduct).Methods("PUT")

	// Cart routes: customers only
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(auth.Verify, middleware.RequireCustomer)
	cart.HandleFunc("", cartController.GetCart).Methods("GET")
	cart.HandleFunc("/addToCart", cartController.AddToCart).Methods("POST")
	cart.HandleFunc("/updateQuantity", cartController.UpdateQuantity).Methods("PUT")
	cart.HandleFunc("/clearCart", cartController.ClearCart).Methods("DELETE")
	cart.HandleFunc("/{productId}/removeFromCart", cartController.RemoveFromCart).Methods("DELETE")

	// Order routes
	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(auth.Verify, middleware.RequireCustomer)
	orders.HandleFunc("/checkout", orderController.Checkout).Methods("POST")
	orders.HandleFunc("/my-orders", orderController.MyOrders).Methods("GET")

	ordersAdmin := router.PathPrefix("/orders").Subrouter()
	ordersAdmin.Use(auth.Verify, middleware.RequireAdmin)
	ordersAdmin.HandleFunc("/all-orders", orderController.AllOrders).Methods("GET")
}
