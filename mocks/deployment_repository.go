package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/modelproof/modelproof-backend/models"
	"github.com/modelproof/modelproof-backend/repositories"
)

type DeploymentRepository struct {
	mock.Mock
}

func (r *DeploymentRepository) GetActiveDeployment(ctx context.Context, exec repositories.Executor,
	aiSystemId string,
) (*models.DeploymentRecord, error) {
	args := r.Called(ctx, exec, aiSystemId)
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func (r *DeploymentRepository) ListDeploymentHistory(ctx context.Context, exec repositories.Executor,
	aiSystemId string,
) ([]models.DeploymentRecord, error) {
	args := r.Called(ctx, exec, aiSystemId)
	return args.Get(0).([]models.DeploymentRecord), args.Error(1)
}

func (r *DeploymentRepository) InsertDeployment(ctx context.Context, exec repositories.Executor,
	deployment models.DeploymentRecord,
) error {
	args := r.Called(ctx, exec, deployment)
	return args.Error(0)
}

func (r *DeploymentRepository) SetDeploymentStatus(ctx context.Context, exec repositories.Executor,
	deploymentId string, status models.DeploymentStatus,
) error {
	args := r.Called(ctx, exec, deploymentId, status)
	return args.Error(0)
}
