package repositories

import (
	"context"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type AISystemRepository interface {
	GetAISystemById(ctx context.Context, exec Executor, aiSystemId string) (models.AISystem, error)
	ListAISystemsOfOrganization(ctx context.Context, exec Executor, organizationId string) ([]models.AISystem, error)
	ListOrganizationIds(ctx context.Context, exec Executor) ([]string, error)
}

type AISystemRepositoryPostgresql struct{}

func (repo *AISystemRepositoryPostgresql) GetAISystemById(ctx context.Context, exec Executor,
	aiSystemId string,
) (models.AISystem, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAISystemColumns...).
			From(dbmodels.TABLE_AI_SYSTEMS).
			Where("id = ?", aiSystemId),
		dbmodels.AdaptAISystem,
	)
}

func (repo *AISystemRepositoryPostgresql) ListAISystemsOfOrganization(ctx context.Context, exec Executor,
	organizationId string,
) ([]models.AISystem, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAISystemColumns...).
			From(dbmodels.TABLE_AI_SYSTEMS).
			Where("organization_id = ?", organizationId).
			OrderBy("created_at"),
		dbmodels.AdaptAISystem,
	)
}

func (repo *AISystemRepositoryPostgresql) ListOrganizationIds(ctx context.Context, exec Executor) ([]string, error) {
	type row struct {
		OrganizationId string `db:"organization_id"`
	}
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select("DISTINCT organization_id").
			From(dbmodels.TABLE_AI_SYSTEMS),
		func(db row) (string, error) { return db.OrganizationId, nil },
	)
}
