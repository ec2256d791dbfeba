package postgres

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homevalue/backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS prediction_logs (
		id                  TEXT PRIMARY KEY,
		request_id          TEXT,
		sqft                DOUBLE PRECISION NOT NULL,
		bedrooms            INTEGER NOT NULL,
		bathrooms           DOUBLE PRECISION NOT NULL,
		location_rating     INTEGER NOT NULL,
		property_age        INTEGER NOT NULL,
		has_garage          BOOLEAN NOT NULL,
		has_pool            BOOLEAN NOT NULL,
		school_quality      INTEGER NOT NULL,
		crime_rate          INTEGER NOT NULL,
		property_type       TEXT NOT NULL,
		predicted_price     DOUBLE PRECISION NOT NULL,
		confidence          DOUBLE PRECISION NOT NULL,
		potential_increase  DOUBLE PRECISION NOT NULL,
		recommended_actions TEXT[] NOT NULL,
		historical_average  DOUBLE PRECISION NOT NULL,
		historical_minimum  DOUBLE PRECISION NOT NULL,
		historical_maximum  DOUBLE PRECISION NOT NULL,
		monthly_trends      JSONB NOT NULL,
		estimator           TEXT NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx ON prediction_logs (created_at DESC);
`

// PostgresRepository implements domain.PredictionRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the prediction_logs table if it is missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to ensure schema: %w", err)
	}
	return nil
}

// SavePredictionLog persists a prediction request/response to PostgreSQL
func (r *PostgresRepository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			id, request_id, sqft, bedrooms, bathrooms, location_rating, property_age,
			has_garage, has_pool, school_quality, crime_rate, property_type,
			predicted_price, confidence, potential_increase, recommended_actions,
			historical_average, historical_minimum, historical_maximum,
			monthly_trends, estimator, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	trends, err := json.Marshal(entry.Result.MonthlyTrends)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode monthly trends: %w", err)
	}

	// Use nil instead of empty string for the nullable request_id column
	var requestID interface{}
	if entry.RequestID != "" {
		requestID = entry.RequestID
	}

	a, res := entry.Attributes, entry.Result
	_, err = r.pool.Exec(ctx, query,
		entry.ID, requestID, a.Sqft, a.Bedrooms, a.Bathrooms, a.LocationRating, a.PropertyAge,
		a.HasGarage, a.HasPool, a.SchoolQuality, a.CrimeRate, string(a.PropertyType),
		res.PredictedPrice, res.Confidence, res.PotentialIncrease, res.RecommendedActions,
		res.HistoricalComparison.Average, res.HistoricalComparison.Minimum, res.HistoricalComparison.Maximum,
		trends, entry.Estimator, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// ListRecentPredictions retrieves the newest prediction logs
func (r *PostgresRepository) ListRecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	query := `
		SELECT id, COALESCE(request_id, ''), sqft, bedrooms, bathrooms, location_rating, property_age,
			   has_garage, has_pool, school_quality, crime_rate, property_type,
			   predicted_price, confidence, potential_increase, recommended_actions,
			   historical_average, historical_minimum, historical_maximum,
			   monthly_trends, estimator, created_at
		FROM prediction_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query prediction logs: %w", err)
	}
	defer rows.Close()

	var results []domain.PredictionLog
	for rows.Next() {
		var (
			p            domain.PredictionLog
			propertyType string
			trends       []byte
		)
		a, res := &p.Attributes, &p.Result
		err := rows.Scan(
			&p.ID, &p.RequestID, &a.Sqft, &a.Bedrooms, &a.Bathrooms, &a.LocationRating, &a.PropertyAge,
			&a.HasGarage, &a.HasPool, &a.SchoolQuality, &a.CrimeRate, &propertyType,
			&res.PredictedPrice, &res.Confidence, &res.PotentialIncrease, &res.RecommendedActions,
			&res.HistoricalComparison.Average, &res.HistoricalComparison.Minimum, &res.HistoricalComparison.Maximum,
			&trends, &p.Estimator, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan prediction log row: %w", err)
		}

		a.PropertyType = domain.PropertyType(propertyType)
		if err := json.Unmarshal(trends, &res.MonthlyTrends); err != nil {
			return nil, fmt.Errorf("postgres: failed to decode monthly trends for %s: %w", p.ID, err)
		}

		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate prediction logs: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
