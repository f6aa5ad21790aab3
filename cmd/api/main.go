// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"libralend/internal/catalog"
	"libralend/internal/config"
	"libralend/internal/lending"
	"libralend/internal/membership"
	"libralend/internal/notification"
	"libralend/internal/observability"
	"libralend/internal/pool"
	"libralend/internal/report"
	"libralend/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("setting up tracing: %v", err)
	}

	store, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}

	workers := pool.New(cfg.WorkerPoolSize)
	policy := lending.NewFinePolicy(cfg.DailyFineRate)

	catalogHandler := catalog.NewHandler(catalog.NewService(store.Books))
	membershipHandler := membership.NewHandler(membership.NewService(store.Members))
	lendingHandler := lending.NewHandler(lending.NewService(store, policy, cfg.LoanPeriodDays))
	notificationHandler := notification.NewHandler(notification.NewDispatcher(
		store.Notifications, store.Members, store.Loans, store.Books, workers))
	reportHandler := report.NewHandler(report.NewService(
		store.Books, store.Loans, store.Members, policy, workers))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		catalogHandler.Routes(r)
		membershipHandler.Routes(r)
		lendingHandler.Routes(r)
		notificationHandler.Routes(r)
		reportHandler.Routes(r)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := workers.Shutdown(shutdownCtx); err != nil {
		log.Printf("worker pool shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		log.Printf("closing store: %v", err)
	}
}
