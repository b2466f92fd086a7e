// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"go-shop/controllers"
	"go-shop/middleware"
	"go-shop/repository"
	"go-shop/routes"
	"go-shop/services"
	"go-shop/utils"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from database")
		}
	}()

	db := client.Database(cfg.DBName)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		categoryRepo.EnsureIndexes,
		cartRepo.EnsureIndexes,
		orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create indexes")
		}
	}

	// Services
	var mailer services.Mailer
	if cfg.SendgridAPIKey != "" {
		mailer = utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, order confirmation emails disabled")
	}

	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, mailer)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration)
	auth := middleware.NewAuthMiddleware(tokens)

	// Controllers
	userController := controllers.NewUserController(userRepo, tokens)
	productController := controllers.NewProductController(productRepo, categoryRepo)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(checkoutService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, auth, userController, productController, cartController, orderController)

	log.Info().Str("port", cfg.Port).Msg("server is running")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
