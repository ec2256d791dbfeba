package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/estimator"
	"github.com/homevalue/backend/internal/logging"
	"github.com/homevalue/backend/internal/metrics"
	"github.com/homevalue/backend/internal/service"
	"github.com/homevalue/backend/internal/validation"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	healthTimeout    = 2 * time.Second
	saveTimeout      = 5 * time.Second
)

// Handler contains all HTTP handlers
type Handler struct {
	predictionSvc   *service.PredictionService
	historicalSvc   *service.HistoricalService
	repo            service.PredictionRepository
	estimator       domain.Estimator
	savePredictions bool

	wgBg sync.WaitGroup // tracks background saves for graceful shutdown
}

// NewHandler creates a new handler
func NewHandler(
	predictionSvc *service.PredictionService,
	historicalSvc *service.HistoricalService,
	repo service.PredictionRepository,
	est domain.Estimator,
	savePredictions bool,
) *Handler {
	return &Handler{
		predictionSvc:   predictionSvc,
		historicalSvc:   historicalSvc,
		repo:            repo,
		estimator:       est,
		savePredictions: savePredictions,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (h *Handler) WaitBackground() {
	h.wgBg.Wait()
}

// Root returns the service identity
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "House Price Prediction API"})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := "ok"
	database := "ok"
	if err := h.repo.Health(ctx); err != nil {
		status, database = "degraded", err.Error()
	}
	model := "ok"
	if err := estimator.Health(ctx, h.estimator); err != nil {
		status, model = "degraded", err.Error()
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"service":   "house-price-backend",
		"version":   "1.0.0",
		"database":  database,
		"estimator": fiber.Map{"name": estimator.Describe(h.estimator), "status": model},
	})
}

// predictRequest uses pointers so a missing field is distinguishable from a zero value
type predictRequest struct {
	Sqft           *float64 `json:"sqft" validate:"required,gt=0"`
	Bedrooms       *int     `json:"bedrooms" validate:"required,gte=0"`
	Bathrooms      *float64 `json:"bathrooms" validate:"required,gte=0"`
	LocationRating *int     `json:"location_rating" validate:"required,gte=1,lte=10"`
	PropertyAge    *int     `json:"property_age" validate:"required,gte=0"`
	HasGarage      *bool    `json:"has_garage" validate:"required"`
	HasPool        *bool    `json:"has_pool" validate:"required"`
	SchoolQuality  *int     `json:"school_quality" validate:"required,gte=1,lte=10"`
	CrimeRate      *int     `json:"crime_rate" validate:"required,gte=1,lte=10"`
	PropertyType   *string  `json:"property_type" validate:"required"`
}

// attributes must only be called after validation
func (r *predictRequest) attributes() domain.PropertyAttributes {
	return domain.PropertyAttributes{
		Sqft:           *r.Sqft,
		Bedrooms:       *r.Bedrooms,
		Bathrooms:      *r.Bathrooms,
		LocationRating: *r.LocationRating,
		PropertyAge:    *r.PropertyAge,
		HasGarage:      *r.HasGarage,
		HasPool:        *r.HasPool,
		SchoolQuality:  *r.SchoolQuality,
		CrimeRate:      *r.CrimeRate,
		PropertyType:   domain.PropertyType(*r.PropertyType),
	}
}

// Predict values a property
func (h *Handler) Predict(c *fiber.Ctx) error {
	var req predictRequest
	if err := c.BodyParser(&req); err != nil {
		return newAPIError(fiber.StatusUnprocessableEntity, "Invalid request body", []validation.FieldError{
			{Field: "body", Tag: "json", Message: err.Error()},
		})
	}

	if err := validation.ValidateStruct(&req); err != nil {
		var reqErr *validation.RequestValidationError
		if errors.As(err, &reqErr) {
			return newAPIError(fiber.StatusUnprocessableEntity, reqErr.Error(), reqErr.Fields)
		}
		return newAPIError(fiber.StatusUnprocessableEntity, err.Error(), nil)
	}

	attrs := req.attributes()
	result, err := h.predictionSvc.Predict(c.UserContext(), attrs)
	if err != nil {
		logging.Error().Err(err).Str("request_id", requestID(c)).Str("property_type", string(attrs.PropertyType)).Msg("Prediction failed")
		return newAPIError(fiber.StatusInternalServerError, "Prediction error", err.Error())
	}

	if h.savePredictions {
		h.saveAsync(domain.PredictionLog{
			ID:         uuid.NewString(),
			RequestID:  requestID(c),
			Attributes: attrs,
			Result:     result,
			Estimator:  estimator.Describe(h.estimator),
			CreatedAt:  time.Now().UTC(),
		})
	}

	return c.JSON(result)
}

// saveAsync persists a prediction log in the background (tracked for graceful shutdown)
func (h *Handler) saveAsync(entry domain.PredictionLog) {
	h.wgBg.Add(1)
	go func() {
		defer h.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := h.repo.SavePredictionLog(bgCtx, entry); err != nil {
			metrics.PredictionLogErrors.Inc()
			logging.Error().Err(err).Str("id", entry.ID).Msg("Failed to save prediction log")
		}
	}()
}

// GetHistoricalData returns the synthetic valuation history
func (h *Handler) GetHistoricalData(c *fiber.Ctx) error {
	return c.JSON(h.historicalSvc.GetHistoricalData())
}

// ListPredictions returns recently served predictions
func (h *Handler) ListPredictions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	logs, err := h.repo.ListRecentPredictions(c.UserContext(), limit)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list prediction logs")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}
	if logs == nil {
		logs = []domain.PredictionLog{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    logs,
		"count":   len(logs),
	})
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
