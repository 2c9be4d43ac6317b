// Package main is the entry point for the itinerary planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/itinerary-planner/internal/bookingapi"
	"github.com/pkordes/itinerary-planner/internal/bookingcache"
	"github.com/pkordes/itinerary-planner/internal/config"
	"github.com/pkordes/itinerary-planner/internal/handler"
	"github.com/pkordes/itinerary-planner/internal/middleware"
	"github.com/pkordes/itinerary-planner/internal/repo"
	"github.com/pkordes/itinerary-planner/internal/service"
	"github.com/pkordes/itinerary-planner/migrations"
	"github.com/pkordes/itinerary-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger until the configured one exists.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	flights := repo.NewFlightRepo(pool)
	hotels := repo.NewHotelRepo(pool)
	feedback := repo.NewFeedbackRepo(pool)

	selectionSvc := service.NewSelectionService(trips, flights, hotels, repo.NewSelectionRepo(pool))
	planSvc, err := service.NewPlanService(trips, feedback, selectionSvc, cfg.FeedbackPolicy)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	bookingSvc := service.NewBookingService(
		hotels,
		repo.NewBookingRepo(pool),
		bookingcache.New(),
		bookingapi.NewClient(cfg.BookingAPIBaseURL, cfg.BookingAPIKey, cfg.BookingTimeout),
		logger,
	)

	server := handler.NewServer(handler.Deps{
		Trips:    service.NewTripService(trips),
		Options:  selectionSvc,
		Feedback: service.NewFeedbackService(trips, feedback),
		Booking:  bookingSvc,
		Plans:    planSvc,
		Logger:   logger,
		OpenAPI:  spec.OpenAPI,
	})

	// --- Router -----------------------------------------------------------
	// Middleware runs in order: RequestID → RealIP → Logger → CORS → body
	// limit → Recoverer. Recoverer sits innermost so the logger sees the 500.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(chimiddleware.Recoverer)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Booking lookups may take up to BookingTimeout, so the write timeout
	// leaves room for one on top of normal handling.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10*time.Second + cfg.BookingTimeout,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "feedback_policy", cfg.FeedbackPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
