package repositories

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/modelproof/modelproof-backend/models"
)

const activeRegulationsCacheKey = "active_regulations"

// CachedRegulationRepository caches the active regulation set, which is
// read-mostly reference data queried on every telemetry evaluation. The cache
// is explicitly constructed and injected; Invalidate must be called after any
// regulation write.
type CachedRegulationRepository struct {
	RegulationRepository

	cache *expirable.LRU[string, []models.Regulation]
}

func NewCachedRegulationRepository(inner RegulationRepository, ttl time.Duration) *CachedRegulationRepository {
	return &CachedRegulationRepository{
		RegulationRepository: inner,
		cache:                expirable.NewLRU[string, []models.Regulation](1, nil, ttl),
	}
}

func (repo *CachedRegulationRepository) ListActiveRegulations(ctx context.Context, exec Executor,
	at time.Time,
) ([]models.Regulation, error) {
	if cached, ok := repo.cache.Get(activeRegulationsCacheKey); ok {
		// the cached set was built with a slightly older "now": re-filter so a
		// regulation whose window closed within the TTL does not leak through
		active := make([]models.Regulation, 0, len(cached))
		for _, regulation := range cached {
			if regulation.ActiveAt(at) {
				active = append(active, regulation)
			}
		}
		return active, nil
	}

	regulations, err := repo.RegulationRepository.ListActiveRegulations(ctx, exec, at)
	if err != nil {
		return nil, err
	}
	repo.cache.Add(activeRegulationsCacheKey, regulations)
	return regulations, nil
}

func (repo *CachedRegulationRepository) CreateRegulation(ctx context.Context, exec Executor,
	input models.CreateRegulationInput, newRegulationId string,
) error {
	err := repo.RegulationRepository.CreateRegulation(ctx, exec, input, newRegulationId)
	if err == nil {
		repo.Invalidate()
	}
	return err
}

func (repo *CachedRegulationRepository) Invalidate() {
	repo.cache.Purge()
}
