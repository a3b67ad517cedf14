package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RGianluca98/Stycly/internal/config"
	"github.com/RGianluca98/Stycly/internal/handlers"
	"github.com/RGianluca98/Stycly/internal/mailer"
	"github.com/RGianluca98/Stycly/internal/middleware"
	"github.com/RGianluca98/Stycly/internal/repository"
	"github.com/RGianluca98/Stycly/internal/service"
	"github.com/RGianluca98/Stycly/internal/session"
	"github.com/RGianluca98/Stycly/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting rental storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"db_backend", cfg.Database.Backend,
		"session_backend", cfg.Redis.Backend,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories
	var (
		itemRepo  repository.ItemRepository
		orderRepo repository.OrderRepository
	)

	switch cfg.Database.Backend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.Database.DSN)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Error("failed to reach database", "error", err)
			os.Exit(1)
		}

		itemRepo = repository.NewMySQLItemRepository(db)
		orderRepo = repository.NewMySQLOrderRepository(db)
	default:
		itemRepo = repository.NewSeededItemRepository()
		orderRepo = repository.NewInMemoryOrderRepository()
	}

	// Initialize session store
	var sessions session.Store

	switch cfg.Redis.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to reach redis", "error", err)
			os.Exit(1)
		}

		sessions = session.NewRedisStore(client, time.Duration(cfg.Session.TTLHours)*time.Hour)
	default:
		sessions = session.NewMemoryStore()
	}

	// Initialize services
	dispatcher := mailer.NewSMTPDispatcher(cfg.Mail, log)
	cartService := service.NewCartService(itemRepo, sessions)
	orderService := service.NewOrderService(itemRepo, orderRepo, sessions, dispatcher, cfg.Mail.OrdersEmail, log)
	wardrobeService := service.NewWardrobeService(itemRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	catalogHandler := handlers.NewCatalogHandler(cartService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	wardrobeHandler := handlers.NewWardrobeHandler(wardrobeService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Session(cfg.Session.CookieName))
	r.Use(middleware.Identity())
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints (cart-aware)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{itemID}", catalogHandler.GetProduct)
		r.Get("/filters", catalogHandler.GetFilters)

		// Cart endpoints
		r.Get("/cart", cartHandler.Get)
		r.Post("/cart/add", cartHandler.Add)
		r.Post("/cart/update", cartHandler.Update)
		r.Post("/cart/remove", cartHandler.Remove)
		r.Post("/cart/clear", cartHandler.Clear)

		// Order endpoints (guest checkout permitted)
		r.Post("/orders", orderHandler.Submit)
		r.Get("/orders/{orderID}", orderHandler.GetOrder)

		// Wardrobe endpoints (owner only)
		r.Route("/wardrobe", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/", wardrobeHandler.List)
			r.Post("/", wardrobeHandler.Add)
			r.Put("/{itemID}", wardrobeHandler.Edit)
			r.Delete("/{itemID}", wardrobeHandler.Delete)
			r.Delete("/", wardrobeHandler.DeleteAll)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
