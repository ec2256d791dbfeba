package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/estimator"
	"github.com/homevalue/backend/internal/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "disabled"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBootstrapCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := execute(t, "bootstrap", "--model-path", path, "--samples", "200")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	model, err := estimator.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, model.Samples)

	_, err = execute(t, "bootstrap", "--model-path", path)
	require.Error(t, err, "existing model is kept without --force")

	_, err = execute(t, "bootstrap", "--model-path", path, "--force")
	require.NoError(t, err)
	model, err = estimator.Load(path)
	require.NoError(t, err)
	assert.Equal(t, estimator.DefaultSamples, model.Samples)
}

func TestPredictCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	out, err := execute(t, "predict",
		"--model-path", path,
		"--sqft", "1500",
		"--location-rating", "5",
		"--type", "condo",
	)
	require.NoError(t, err)

	var result domain.PredictionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Greater(t, result.PredictedPrice, 0.0)
	assert.Equal(t, 25.0, result.PotentialIncrease)
	assert.Len(t, result.MonthlyTrends, 12)
	assert.Contains(t, result.RecommendedActions, service.MsgLocation)
	assert.Contains(t, result.RecommendedActions, service.MsgGarage)

	_, err = estimator.Load(path)
	assert.NoError(t, err, "missing model is fitted and saved")
}

func TestPredictCommand_RejectsNonPositiveSqft(t *testing.T) {
	_, err := execute(t, "predict", "--model-path", "", "--sqft", "0")
	assert.Error(t, err)
}
