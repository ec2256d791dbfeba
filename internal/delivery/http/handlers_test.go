package http

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/repository/postgres"
	"github.com/homevalue/backend/internal/service"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

type stubEstimator struct {
	price float64
	err   error
}

func (s stubEstimator) Predict(context.Context, domain.FeatureVector) (float64, error) {
	return s.price, s.err
}

type errorBody struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

const validBody = `{
	"sqft": 2000, "bedrooms": 3, "bathrooms": 2, "location_rating": 8,
	"property_age": 10, "has_garage": true, "has_pool": true,
	"school_quality": 8, "crime_rate": 3, "property_type": "single_family"
}`

func newTestApp(t *testing.T, est domain.Estimator) (*fiber.App, *Handler, *postgres.MockRepository) {
	t.Helper()
	repo := postgres.NewMockRepository(10)
	h := NewHandler(
		service.NewPredictionService(est, fixedRandom(0.5)),
		service.NewHistoricalService(service.DefaultHistoricalSeed),
		repo,
		est,
		true,
	)
	return NewApp(h, "*"), h, repo
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestRoot(t *testing.T) {
	app, _, _ := newTestApp(t, stubEstimator{price: 300000})

	status, body := doRequest(t, app, fiber.MethodGet, "/", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"message":"House Price Prediction API"}`, string(body))
}

func TestPredict_Success(t *testing.T) {
	app, h, repo := newTestApp(t, stubEstimator{price: 300000})

	status, body := doRequest(t, app, fiber.MethodPost, "/predict", validBody)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var result domain.PredictionResult
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 330000.0, result.PredictedPrice)
	assert.Equal(t, 90.0, result.Confidence)
	assert.Equal(t, 25.0, result.PotentialIncrease)
	assert.Equal(t, []string{service.MsgExcellent}, result.RecommendedActions)
	assert.Equal(t, 297000.0, result.HistoricalComparison.Average)
	assert.Equal(t, 247500.0, result.HistoricalComparison.Minimum)
	assert.Equal(t, 379500.0, result.HistoricalComparison.Maximum)
	assert.Len(t, result.MonthlyTrends, 12)

	h.WaitBackground()
	logs, err := repo.ListRecentPredictions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.NotEmpty(t, logs[0].RequestID)
	assert.Equal(t, "custom", logs[0].Estimator)
	assert.Equal(t, domain.PropertyTypeSingleFamily, logs[0].Attributes.PropertyType)
}

func TestPredict_APIv1Route(t *testing.T) {
	app, h, _ := newTestApp(t, stubEstimator{price: 300000})
	defer h.WaitBackground()

	status, _ := doRequest(t, app, fiber.MethodPost, "/api/v1/predict", validBody)

	assert.Equal(t, fiber.StatusOK, status)
}

func TestPredict_FalseBooleansAccepted(t *testing.T) {
	app, h, _ := newTestApp(t, stubEstimator{price: 300000})
	defer h.WaitBackground()

	body := strings.Replace(validBody, `"has_garage": true, "has_pool": true`, `"has_garage": false, "has_pool": false`, 1)
	status, data := doRequest(t, app, fiber.MethodPost, "/predict", body)

	require.Equal(t, fiber.StatusOK, status, string(data))
	var result domain.PredictionResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Contains(t, result.RecommendedActions, service.MsgGarage)
}

func TestPredict_UnprocessableRequests(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing field",
			body:  strings.Replace(validBody, `"crime_rate": 3,`, ``, 1),
			field: "crime_rate",
		},
		{
			name:  "null field",
			body:  strings.Replace(validBody, `"sqft": 2000`, `"sqft": null`, 1),
			field: "sqft",
		},
		{
			name:  "rating above range",
			body:  strings.Replace(validBody, `"location_rating": 8`, `"location_rating": 11`, 1),
			field: "location_rating",
		},
		{
			name:  "rating below range",
			body:  strings.Replace(validBody, `"school_quality": 8`, `"school_quality": 0`, 1),
			field: "school_quality",
		},
		{
			name:  "non-positive sqft",
			body:  strings.Replace(validBody, `"sqft": 2000`, `"sqft": 0`, 1),
			field: "sqft",
		},
		{
			name:  "negative age",
			body:  strings.Replace(validBody, `"property_age": 10`, `"property_age": -1`, 1),
			field: "property_age",
		},
		{
			name:  "mistyped field",
			body:  strings.Replace(validBody, `"bedrooms": 3`, `"bedrooms": "three"`, 1),
			field: "body",
		},
		{
			name:  "malformed json",
			body:  `{"sqft": `,
			field: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, repo := newTestApp(t, stubEstimator{price: 300000})

			status, data := doRequest(t, app, fiber.MethodPost, "/predict", tt.body)
			require.Equal(t, fiber.StatusUnprocessableEntity, status, string(data))

			var resp errorBody
			require.NoError(t, json.Unmarshal(data, &resp))
			assert.True(t, resp.Error)

			var fields []struct {
				Field string `json:"field"`
			}
			require.NoError(t, json.Unmarshal(resp.Detail, &fields))
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)

			logs, err := repo.ListRecentPredictions(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, logs)
		})
	}
}

func TestPredict_ComputationFailure(t *testing.T) {
	app, _, repo := newTestApp(t, stubEstimator{err: errors.New("model unavailable")})

	status, data := doRequest(t, app, fiber.MethodPost, "/predict", validBody)
	require.Equal(t, fiber.StatusInternalServerError, status)

	var resp errorBody
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.True(t, resp.Error)

	var detail string
	require.NoError(t, json.Unmarshal(resp.Detail, &detail))
	assert.Contains(t, detail, "model unavailable")
	assert.Contains(t, detail, domain.StageEstimate)

	logs, err := repo.ListRecentPredictions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, logs, "failed predictions are not logged")
}

func TestGetHistoricalData(t *testing.T) {
	app, _, _ := newTestApp(t, stubEstimator{price: 300000})

	status, data := doRequest(t, app, fiber.MethodGet, "/historical-data", "")
	require.Equal(t, fiber.StatusOK, status)

	var records []domain.HistoricalRecord
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 10)

	_, again := doRequest(t, app, fiber.MethodGet, "/historical-data", "")
	assert.JSONEq(t, string(data), string(again))
}

func TestHealthCheck(t *testing.T) {
	app, _, _ := newTestApp(t, stubEstimator{price: 300000})

	status, data := doRequest(t, app, fiber.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, status)

	var resp struct {
		Status    string `json:"status"`
		Database  string `json:"database"`
		Estimator struct {
			Name string `json:"name"`
		} `json:"estimator"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.Equal(t, "custom", resp.Estimator.Name)
}

func TestListPredictions(t *testing.T) {
	app, h, _ := newTestApp(t, stubEstimator{price: 300000})

	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, fiber.MethodPost, "/predict", validBody)
		require.Equal(t, fiber.StatusOK, status)
	}
	h.WaitBackground()

	tests := []struct {
		query string
		count int
	}{
		{query: "", count: 3},
		{query: "?limit=2", count: 2},
		{query: "?limit=0", count: 3},
		{query: "?limit=1000", count: 3},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			status, data := doRequest(t, app, fiber.MethodGet, "/api/v1/predictions"+tt.query, "")
			require.Equal(t, fiber.StatusOK, status)

			var resp struct {
				Success bool                   `json:"success"`
				Data    []domain.PredictionLog `json:"data"`
				Count   int                    `json:"count"`
			}
			require.NoError(t, json.Unmarshal(data, &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tt.count, resp.Count)
			assert.Len(t, resp.Data, tt.count)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t, stubEstimator{price: 300000})

	doRequest(t, app, fiber.MethodGet, "/", "")
	status, data := doRequest(t, app, fiber.MethodGet, "/metrics", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(data), "api_requests_total")
}

func TestNotFound(t *testing.T) {
	app, _, _ := newTestApp(t, stubEstimator{price: 300000})

	status, data := doRequest(t, app, fiber.MethodGet, "/does-not-exist", "")

	assert.Equal(t, fiber.StatusNotFound, status)
	var resp errorBody
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.True(t, resp.Error)
}
