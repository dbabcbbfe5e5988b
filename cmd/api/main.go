package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"prepmate/internal/auth"
	"prepmate/internal/config"
	"prepmate/internal/feedback"
	"prepmate/internal/genai"
	transporthttp "prepmate/internal/http"
	"prepmate/internal/identity"
	"prepmate/internal/interviews"
	"prepmate/internal/platform/database"
	"prepmate/internal/platform/logging"
	"prepmate/internal/platform/metrics"
	"prepmate/internal/platform/migrate"
	"prepmate/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel)

	userRepo, interviewRepo, feedbackRepo, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	providerClient := &http.Client{Timeout: 10 * time.Second}
	provider, err := identity.NewClient(ctx, identity.Credentials{
		ProjectID:   cfg.FirebaseProjectID,
		ClientEmail: cfg.FirebaseClientEmail,
		PrivateKey:  cfg.FirebasePrivateKey,
	}, providerClient)
	if err != nil {
		logger.Error("failed to initialize identity provider", "error", err)
		os.Exit(1)
	}

	modelClient := &http.Client{Timeout: 60 * time.Second}
	model := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, modelClient)

	sessions := auth.NewService(provider, userRepo, logger)
	directory := users.NewDirectory(userRepo, provider, sessions)
	interviewSvc := interviews.NewService(interviewRepo)
	generator := feedback.NewGenerator(model, feedbackRepo)
	collector := metrics.NewCollector()

	router := transporthttp.NewRouter(cfg, transporthttp.Deps{
		Directory:  directory,
		Sessions:   sessions,
		Interviews: interviewSvc,
		Feedback:   generator,
		Metrics:    collector,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("PrepMate API listening", "addr", srv.Addr, "store", cfg.DataStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (users.Repository, interviews.Repository, feedback.Repository, func(), error) {
	if cfg.UseInMemoryStore() {
		logger.Info("using in-memory repository")
		return users.NewInMemoryRepository(),
			interviews.NewInMemoryRepository(seedLocalInterviews()),
			feedback.NewInMemoryRepository(),
			nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}

	if err := migrate.Apply(ctx, db, logger); err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}

	logger.Info("connected to postgres")
	return users.NewPostgresRepository(db),
		interviews.NewPostgresRepository(db),
		feedback.NewPostgresRepository(db),
		cleanup, nil
}
