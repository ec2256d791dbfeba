package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevalue/backend/internal/domain"
)

var _ domain.PredictionRepository = (*MockRepository)(nil)
var _ domain.PredictionRepository = (*PostgresRepository)(nil)

func TestMockRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository(0)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SavePredictionLog(ctx, domain.PredictionLog{ID: fmt.Sprint(i)}))
	}

	logs, err := repo.ListRecentPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{"2", "1", "0"}, []string{logs[0].ID, logs[1].ID, logs[2].ID})

	logs, err = repo.ListRecentPredictions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, "2", logs[0].ID)
}

func TestMockRepository_EvictsBeyondCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewMockRepository(2)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SavePredictionLog(ctx, domain.PredictionLog{ID: fmt.Sprint(i)}))
	}

	logs, err := repo.ListRecentPredictions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "4", logs[0].ID)
	assert.Equal(t, "3", logs[1].ID)
}

func TestMockRepository_NoopOperations(t *testing.T) {
	repo := NewMockRepository(1)
	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, repo.Health(context.Background()))
}
