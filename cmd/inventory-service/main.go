package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pharmstock/pharmstock-backend/internal/inventory/events"
	invhandler "github.com/pharmstock/pharmstock-backend/internal/inventory/handler"
	"github.com/pharmstock/pharmstock-backend/internal/inventory/repository"
	invservice "github.com/pharmstock/pharmstock-backend/internal/inventory/service"
	rpthandler "github.com/pharmstock/pharmstock-backend/internal/report/handler"
	"github.com/pharmstock/pharmstock-backend/internal/report/render"
	rptservice "github.com/pharmstock/pharmstock-backend/internal/report/service"
	"github.com/pharmstock/pharmstock-backend/pkg/config"
	"github.com/pharmstock/pharmstock-backend/pkg/database"
	"github.com/pharmstock/pharmstock-backend/pkg/httputil"
	"github.com/pharmstock/pharmstock-backend/pkg/logger"
	"github.com/pharmstock/pharmstock-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("inventory-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("inventory-service", cfg.Server.Environment)
	log.Info().Msg("starting Inventory Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewInventoryEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	warehouseRepo := repository.NewWarehouseRepository(db)
	productRepo := repository.NewProductRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	// Initialize services
	inventoryService := invservice.NewInventoryService(warehouseRepo, productRepo, batchRepo, publisher, log)
	reportService := rptservice.NewReportService(productRepo, batchRepo, log)
	renderer := render.NewRenderer(log)

	// Initialize handlers
	warehouseHandler := invhandler.NewWarehouseHandler(inventoryService, log)
	productHandler := invhandler.NewProductHandler(inventoryService, log)
	batchHandler := invhandler.NewBatchHandler(inventoryService, log)
	reportHandler := rpthandler.NewReportHandler(reportService, renderer, log)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "inventory-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1/inventory", func(r chi.Router) {
		// Warehouse routes
		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", warehouseHandler.List)
			r.Post("/", warehouseHandler.Create)

			r.Route("/{warehouseID}", func(r chi.Router) {
				r.Get("/", warehouseHandler.Get)

				r.Route("/products", func(r chi.Router) {
					r.Get("/", productHandler.List)
					r.Post("/", productHandler.Create)
					r.Get("/{skuID}", productHandler.Get)
					r.Put("/{skuID}", productHandler.Update)
					r.Delete("/{skuID}", productHandler.Delete)
					r.Get("/{skuID}/batches", batchHandler.ListBySKU)
					r.Post("/{skuID}/batches", batchHandler.Create)
				})

				r.Route("/batches", func(r chi.Router) {
					r.Get("/expiring", batchHandler.ListExpiring)
					r.Get("/{batchID}", batchHandler.Get)
					r.Put("/{batchID}", batchHandler.Update)
					r.Delete("/{batchID}", batchHandler.Delete)
				})
			})
		})
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Post("/generate", reportHandler.Generate)
		r.Get("/recent", reportHandler.Recent)
		r.Get("/download/{reportID}", reportHandler.Download)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
