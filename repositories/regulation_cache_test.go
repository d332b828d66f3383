package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/pure_utils"
)

// countingRegulationRepository records how often the store is hit, so the
// tests can tell cache hits from misses.
type countingRegulationRepository struct {
	RegulationRepository

	listCalls   int
	regulations []models.Regulation
}

func (r *countingRegulationRepository) ListActiveRegulations(ctx context.Context, exec Executor,
	at time.Time,
) ([]models.Regulation, error) {
	r.listCalls++
	return r.regulations, nil
}

func (r *countingRegulationRepository) CreateRegulation(ctx context.Context, exec Executor,
	input models.CreateRegulationInput, newRegulationId string,
) error {
	return nil
}

func TestCachedRegulationRepository_secondReadIsServedFromCache(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	inner := &countingRegulationRepository{
		regulations: []models.Regulation{
			{Id: "reg-1", EffectiveDate: now.Add(-365 * 24 * time.Hour)},
		},
	}
	repo := NewCachedRegulationRepository(inner, time.Minute)

	first, err := repo.ListActiveRegulations(context.Background(), nil, now)
	require.NoError(t, err)
	second, err := repo.ListActiveRegulations(context.Background(), nil, now)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listCalls)
	assert.Equal(t, first, second)
}

func TestCachedRegulationRepository_cachedEntriesAreRefilteredByActivityWindow(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	inner := &countingRegulationRepository{
		regulations: []models.Regulation{
			{Id: "reg-permanent", EffectiveDate: now.Add(-365 * 24 * time.Hour)},
			{
				Id:            "reg-sunsetting",
				EffectiveDate: now.Add(-365 * 24 * time.Hour),
				SunsetDate:    pure_utils.Ptr(now.Add(30 * time.Second)),
			},
		},
	}
	repo := NewCachedRegulationRepository(inner, time.Minute)

	first, err := repo.ListActiveRegulations(context.Background(), nil, now)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// the sunset falls inside the cache TTL: the cached set must not leak the
	// expired regulation
	afterSunset, err := repo.ListActiveRegulations(context.Background(), nil, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, afterSunset, 1)
	assert.Equal(t, "reg-permanent", afterSunset[0].Id)
	assert.Equal(t, 1, inner.listCalls)
}

func TestCachedRegulationRepository_writeInvalidatesTheCache(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	inner := &countingRegulationRepository{
		regulations: []models.Regulation{
			{Id: "reg-1", EffectiveDate: now.Add(-365 * 24 * time.Hour)},
		},
	}
	repo := NewCachedRegulationRepository(inner, time.Minute)

	_, err := repo.ListActiveRegulations(context.Background(), nil, now)
	require.NoError(t, err)

	err = repo.CreateRegulation(context.Background(), nil, models.CreateRegulationInput{}, "reg-2")
	require.NoError(t, err)

	_, err = repo.ListActiveRegulations(context.Background(), nil, now)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}
