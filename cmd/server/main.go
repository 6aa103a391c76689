package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"classtrack/internal/audit"
	"classtrack/internal/class"
	"classtrack/internal/enrollment"
	"classtrack/internal/parent"
	"classtrack/internal/platform/config"
	"classtrack/internal/platform/httpserver"
	"classtrack/internal/platform/logger"
	"classtrack/internal/platform/metrics"
	"classtrack/internal/platform/postgres"
	"classtrack/internal/student"
	"classtrack/internal/subscription"
	httptransport "classtrack/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}

	m := metrics.New()

	recorder := audit.NewRecorder(cfg.AuditBufferSize, log)
	auditWorker := audit.NewWorker(audit.NewPostgres(db), recorder.Inbox(), log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()

	parentSvc := parent.NewService(parent.NewPostgres(db), log)
	studentSvc := student.NewService(student.NewPostgres(db), log)
	classSvc := class.NewService(class.NewPostgres(db), log)
	enrollmentSvc := enrollment.NewService(enrollment.NewPostgres(db), recorder, m, log)
	subscriptionSvc := subscription.NewService(subscription.NewPostgres(db), recorder, m, log)

	handler := httptransport.NewHandler(parentSvc, studentSvc, classSvc, enrollmentSvc, subscriptionSvc, log)
	router := httptransport.NewRouter(handler, log, db.PingContext)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
