package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/clientelab/cliente-analytics-api/internal/config"
	"github.com/clientelab/cliente-analytics-api/internal/db"
	"github.com/clientelab/cliente-analytics-api/internal/handler"
	"github.com/clientelab/cliente-analytics-api/internal/repository"
	"github.com/clientelab/cliente-analytics-api/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting cliente analytics API server")

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on OS environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to MongoDB
	database, err := db.New(db.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(ctx); err != nil {
			logger.Error("failed to disconnect from database", slog.String("error", err.Error()))
		}
	}()

	logger.Info("connected to database")

	// Unique index on id, text index on nome
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		logger.Error("failed to create indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cancelIndex()

	// Initialize repository and service
	clienteRepo := repository.NewClienteRepository(database.Collection)
	clienteSvc := service.NewClienteService(clienteRepo, logger)

	// Initialize handlers
	clienteHandler := handler.NewClienteHandler(clienteSvc, logger)
	analyticsHandler := handler.NewAnalyticsHandler(clienteSvc, logger)
	healthHandler := handler.NewHealthHandler(database, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes; analytics routes come before /{id} so "analise"
	// never binds as a cliente id
	r.Get("/health", healthHandler.Health)

	r.Route("/clientes", func(r chi.Router) {
		r.Post("/", clienteHandler.CreateCliente)
		r.Get("/", clienteHandler.ListClientes)

		r.Route("/analise", func(r chi.Router) {
			r.Get("/faixa-etaria", analyticsHandler.FaixaEtaria)
			r.Get("/segmentacao-rfm", analyticsHandler.SegmentacaoRFM)
			r.Get("/produtos-mais-vendidos", analyticsHandler.ProdutosMaisVendidos)
			r.Get("/maior-valor-compra", analyticsHandler.MaiorValorCompra)
			r.Get("/comportamento-idade", analyticsHandler.ComportamentoIdade)
			r.Get("/gasto-faixa-etaria", analyticsHandler.GastoFaixaEtaria)
		})

		r.Get("/{id}", clienteHandler.GetCliente)
		r.Put("/{id}", clienteHandler.UpdateCliente)
		r.Delete("/{id}", clienteHandler.DeleteCliente)
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
