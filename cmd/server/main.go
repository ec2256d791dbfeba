package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/homevalue/backend/internal/config"
	"github.com/homevalue/backend/internal/delivery/http"
	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/estimator"
	"github.com/homevalue/backend/internal/logging"
	"github.com/homevalue/backend/internal/repository/postgres"
	"github.com/homevalue/backend/internal/service"
)

var errNoDatabaseURL = errors.New("DATABASE_URL is not set")

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Caller: cfg.IsDevelopment(),
		Output: os.Stderr,
	})
	if envErr != nil {
		logging.Info().Msg("No .env file found, using system environment")
	}

	// Estimator: local model, optionally fronted by the external model service
	model, err := estimator.LoadOrBootstrap(cfg.ModelPath, cfg.ModelSeed)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("Could not prepare price model")
	}
	var est domain.Estimator = model
	if cfg.EstimatorURL != "" {
		est = estimator.NewRemoteEstimator(cfg.EstimatorURL, cfg.EstimatorTimeout, model,
			estimator.WithRateLimit(cfg.EstimatorRPS, cfg.EstimatorBurst))
		logging.Info().Str("url", cfg.EstimatorURL).Msg("Using remote estimator with local fallback")
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo service.PredictionRepository
	pool, err := connectDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Warn().Err(err).Msg("Could not connect to database, prediction logs kept in memory")
		repo = postgres.NewMockRepository(postgres.DefaultMockCapacity)
	} else {
		defer pool.Close()
		pgRepo := postgres.NewPostgresRepository(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Could not prepare database schema")
		}
		repo = pgRepo
		logging.Info().Msg("Connected to PostgreSQL")
	}

	// Dependency Injection: Services
	predictionSvc := service.NewPredictionService(est, service.DefaultRandom())
	historicalSvc := service.NewHistoricalService(service.DefaultHistoricalSeed)
	handler := http.NewHandler(predictionSvc, historicalSvc, repo, est, cfg.SavePredictions)

	app := http.NewApp(handler, cfg.AllowOrigins)

	// Graceful shutdown
	go func() {
		logging.Info().Str("addr", cfg.Addr()).Str("estimator", estimator.Describe(est)).Msg("Server starting")
		if err := app.Listen(cfg.Addr()); err != nil {
			logging.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logging.Error().Err(err).Msg("Server forced to shutdown")
	}
	handler.WaitBackground()
	logging.Info().Msg("Server exited gracefully")
}

// connectDatabase opens a pool and verifies the server is reachable
func connectDatabase(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errNoDatabaseURL
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
