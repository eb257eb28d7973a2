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

	"github.com/akrudenko/OfficeBankIS/internal/app"
	"github.com/akrudenko/OfficeBankIS/internal/clock"
	"github.com/akrudenko/OfficeBankIS/internal/config"
	"github.com/akrudenko/OfficeBankIS/internal/storage/postgres"
	transporthttp "github.com/akrudenko/OfficeBankIS/internal/transport/http"
	"github.com/akrudenko/OfficeBankIS/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()
	bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool), clk)
	approvalSvc := app.NewApprovalService(postgres.NewApprovalRepository(pool), clk)
	directoryRepo := postgres.NewDirectoryRepository(pool)
	reportSvc := app.NewReportService(directoryRepo, cfg.WorkdayStartHour, cfg.WorkdayEndHour)
	directorySvc := app.NewDirectoryService(directoryRepo)

	handler := transporthttp.NewRouter(transporthttp.Dependencies{
		Bookings:    bookingSvc,
		Approvals:   approvalSvc,
		Reports:     reportSvc,
		Directory:   directorySvc,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	log.Printf("api listening on %s", cfg.HTTPAddr)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
