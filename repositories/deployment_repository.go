package repositories

import (
	"context"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories/dbmodels"
)

type DeploymentRepository interface {
	GetActiveDeployment(ctx context.Context, exec Executor, aiSystemId string) (*models.DeploymentRecord, error)
	ListDeploymentHistory(ctx context.Context, exec Executor, aiSystemId string) ([]models.DeploymentRecord, error)
	InsertDeployment(ctx context.Context, exec Executor, deployment models.DeploymentRecord) error
	SetDeploymentStatus(ctx context.Context, exec Executor, deploymentId string,
		status models.DeploymentStatus) error
}

type DeploymentRepositoryPostgresql struct{}

func (repo *DeploymentRepositoryPostgresql) GetActiveDeployment(ctx context.Context, exec Executor,
	aiSystemId string,
) (*models.DeploymentRecord, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDeploymentColumns...).
			From(dbmodels.TABLE_DEPLOYMENTS).
			Where("ai_system_id = ? AND status = ?", aiSystemId, models.DeploymentActive.String()),
		dbmodels.AdaptDeploymentRecord,
	)
}

// ListDeploymentHistory returns all deployment records of a system, most
// recent first.
func (repo *DeploymentRepositoryPostgresql) ListDeploymentHistory(ctx context.Context, exec Executor,
	aiSystemId string,
) ([]models.DeploymentRecord, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectDeploymentColumns...).
			From(dbmodels.TABLE_DEPLOYMENTS).
			Where("ai_system_id = ?", aiSystemId).
			OrderBy("deployed_at DESC"),
		dbmodels.AdaptDeploymentRecord,
	)
}

func (repo *DeploymentRepositoryPostgresql) InsertDeployment(ctx context.Context, exec Executor,
	deployment models.DeploymentRecord,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_DEPLOYMENTS).
			Columns(
				"id",
				"organization_id",
				"ai_system_id",
				"version",
				"status",
				"type",
				"deployed_by",
				"rollback_from",
			).
			Values(
				deployment.Id,
				deployment.OrganizationId,
				deployment.AISystemId,
				deployment.Version,
				deployment.Status.String(),
				string(deployment.Type),
				deployment.DeployedBy,
				deployment.RollbackFrom,
			),
	)
}

func (repo *DeploymentRepositoryPostgresql) SetDeploymentStatus(ctx context.Context, exec Executor,
	deploymentId string, status models.DeploymentStatus,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_DEPLOYMENTS).
			Set("status", status.String()).
			Where("id = ?", deploymentId),
	)
}
